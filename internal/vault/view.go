package vault

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/TheMichaelB/pwvault/internal/models"
)

// ViewOptions selects and orders entries for presentation. The stored
// sequence keeps insertion order; views work on copies and never
// mutate it.
type ViewOptions struct {
	// Query filters on title, username and notes, case-insensitive.
	Query string

	// Tag keeps only entries carrying the tag.
	Tag string

	// Type keeps only entries of the given type when non-empty.
	Type models.EntryType
}

// ListEntries returns a derived view of the vault's entries: filtered
// by the options, pinned entries first, then ordered by title using
// locale-aware collation.
func ListEntries(v *models.Vault, opts ViewOptions) []*models.Entry {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var out []*models.Entry
	for _, e := range v.Entries {
		if opts.Type != "" && e.Type != opts.Type {
			continue
		}
		if opts.Tag != "" && !e.HasTag(opts.Tag) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e.Clone())
	}

	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return c.CompareString(out[i].Title, out[j].Title) < 0
	})

	return out
}

func matchesQuery(e *models.Entry, query string) bool {
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Username), query) ||
		strings.Contains(strings.ToLower(e.Notes), query)
}

// Package importers converts third-party password-manager exports into
// vault entries. Importers parse plaintext export files only; adding
// the parsed entries to a vault and re-encrypting is the engine's job.
package importers

import (
	"fmt"
)

// ParsedEntry is one record recovered from an export file.
type ParsedEntry struct {
	Title    string
	Username string
	Password string
	Notes    string
	Tags     []string
}

// RowError records a single failed row.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Skipped  int
	Errors   []RowError
}

func (r *Result) addError(row int, reason string) {
	r.Errors = append(r.Errors, RowError{Row: row, Reason: reason})
}

func (r *Result) String() string {
	return fmt.Sprintf("import complete: %d succeeded, %d skipped, %d failed",
		r.Imported, r.Skipped, len(r.Errors))
}

// Format identifies a supported export format.
type Format string

const (
	FormatGeneric     Format = "generic"
	FormatKeePass     Format = "keepass"
	FormatBitwarden   Format = "bitwarden"
	FormatLastPass    Format = "lastpass"
	FormatOnePassword Format = "1password"
)

// DetectFormat guesses the CSV export format from its header row.
// Returns an empty format when the headers match nothing supported.
func DetectFormat(headers []string) Format {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[normalizeHeader(h)] = true
	}

	switch {
	case set["group"] && set["title"] && set["username"]:
		return FormatKeePass
	case set["folder"] && set["type"] && set["name"]:
		return FormatBitwarden
	case set["url"] && set["username"] && set["password"] && set["extra"]:
		return FormatLastPass
	case set["title"] && set["website"] && set["username"]:
		return FormatOnePassword
	case set["title"] || set["name"]:
		return FormatGeneric
	default:
		return ""
	}
}

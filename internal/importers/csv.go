package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// columnMap maps a format's CSV columns onto entry fields.
type columnMap struct {
	title    []string
	username []string
	password []string
	notes    []string
	url      []string
	tags     []string
}

var formatColumns = map[Format]columnMap{
	FormatGeneric: {
		title:    []string{"title", "name"},
		username: []string{"username", "user", "login"},
		password: []string{"password", "pass"},
		notes:    []string{"notes", "note", "comments"},
		url:      []string{"url", "website", "web site"},
		tags:     []string{"tags", "group", "folder"},
	},
	FormatKeePass: {
		title:    []string{"title"},
		username: []string{"username"},
		password: []string{"password"},
		notes:    []string{"notes"},
		url:      []string{"url"},
		tags:     []string{"group"},
	},
	FormatLastPass: {
		title:    []string{"name"},
		username: []string{"username"},
		password: []string{"password"},
		notes:    []string{"extra"},
		url:      []string{"url"},
		tags:     []string{"grouping"},
	},
	FormatOnePassword: {
		title:    []string{"title"},
		username: []string{"username"},
		password: []string{"password"},
		notes:    []string{"notes"},
		url:      []string{"website"},
		tags:     []string{"tags"},
	},
	FormatBitwarden: {
		title:    []string{"name"},
		username: []string{"login_username"},
		password: []string{"login_password"},
		notes:    []string{"notes"},
		url:      []string{"login_uri"},
		tags:     []string{"folder"},
	},
}

// ImportCSV parses a CSV export in the given format. An empty format
// triggers header-based detection.
func ImportCSV(r io.Reader, format Format) ([]ParsedEntry, *Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = normalizeHeader(headers[i])
	}

	if format == "" {
		format = DetectFormat(headers)
		if format == "" {
			return nil, nil, fmt.Errorf("unrecognized CSV header: %s", strings.Join(headers, ","))
		}
	}

	cols, ok := formatColumns[format]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported import format: %s", format)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	result := &Result{}
	var entries []ParsedEntry

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.addError(row, err.Error())
			continue
		}

		entry := ParsedEntry{
			Title:    pick(record, index, cols.title),
			Username: pick(record, index, cols.username),
			Password: pick(record, index, cols.password),
			Notes:    pick(record, index, cols.notes),
		}

		if entry.Title == "" {
			result.addError(row, "missing title")
			continue
		}

		if url := pick(record, index, cols.url); url != "" {
			if entry.Notes != "" {
				entry.Notes = "URL: " + url + "\n\n" + entry.Notes
			} else {
				entry.Notes = "URL: " + url
			}
		}

		if tag := pick(record, index, cols.tags); tag != "" {
			entry.Tags = []string{tag}
		}

		entries = append(entries, entry)
		result.Imported++
	}

	return entries, result, nil
}

func pick(record []string, index map[string]int, candidates []string) string {
	for _, name := range candidates {
		if i, ok := index[name]; ok && i < len(record) {
			if v := strings.TrimSpace(record[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	// Exports from Windows tools often carry a UTF-8 BOM.
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(h))
}

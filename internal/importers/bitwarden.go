package importers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// bitwardenLoginType is Bitwarden's discriminant for login items.
const bitwardenLoginType = 1

type bitwardenExport struct {
	Items []bitwardenItem `json:"items"`
}

type bitwardenItem struct {
	Type       int             `json:"type"`
	Name       string          `json:"name"`
	Notes      string          `json:"notes"`
	FolderName string          `json:"folderName"`
	Folder     string          `json:"folder"`
	Login      *bitwardenLogin `json:"login"`
}

type bitwardenLogin struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	URIs     []bitwardenURI `json:"uris"`
}

type bitwardenURI struct {
	URI string `json:"uri"`
}

// ImportBitwardenJSON parses a Bitwarden JSON export. Non-login items
// are skipped, not errors.
func ImportBitwardenJSON(r io.Reader) ([]ParsedEntry, *Result, error) {
	var export bitwardenExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, nil, fmt.Errorf("parse Bitwarden JSON: %w", err)
	}

	result := &Result{}
	var entries []ParsedEntry

	for idx, item := range export.Items {
		if item.Type != bitwardenLoginType {
			result.Skipped++
			continue
		}
		if item.Name == "" {
			result.addError(idx+1, "missing name")
			continue
		}

		entry := ParsedEntry{
			Title: item.Name,
			Notes: item.Notes,
		}

		if item.Login != nil {
			entry.Username = item.Login.Username
			entry.Password = item.Login.Password

			var uris []string
			for _, u := range item.Login.URIs {
				if u.URI != "" {
					uris = append(uris, u.URI)
				}
			}
			if len(uris) > 0 {
				block := "URLs:\n" + strings.Join(uris, "\n")
				if entry.Notes != "" {
					entry.Notes = block + "\n\n" + entry.Notes
				} else {
					entry.Notes = block
				}
			}
		}

		if folder := firstNonEmpty(item.FolderName, item.Folder); folder != "" {
			entry.Tags = []string{folder}
		}

		entries = append(entries, entry)
		result.Imported++
	}

	return entries, result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

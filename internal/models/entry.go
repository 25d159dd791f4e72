package models

import (
	"fmt"
	"strings"
	"time"
)

// EntryType discriminates credential entries from free-form notes.
type EntryType string

const (
	TypePassword EntryType = "password"
	TypeNote     EntryType = "note"
)

// Entry is one credential or note record owned by a vault.
type Entry struct {
	ID              string         `json:"id"`
	Type            EntryType      `json:"type"`
	Title           string         `json:"title"`
	Username        string         `json:"username"`
	Password        string         `json:"password"`
	Notes           string         `json:"notes"`
	Tags            []string       `json:"tags"`
	Pinned          bool           `json:"pinned"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	PasswordHistory []HistoryEntry `json:"password_history"`
}

// HistoryEntry records a superseded password. The history list is
// ordered newest first.
type HistoryEntry struct {
	Password  string    `json:"password"`
	ChangedAt time.Time `json:"changed_at"`
}

// Validate checks an entry loaded from the deserialization boundary.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry ID is required")
	}

	switch e.Type {
	case TypePassword, TypeNote:
	default:
		return fmt.Errorf("unknown entry type: %q", e.Type)
	}

	if e.CreatedAt.IsZero() {
		return fmt.Errorf("entry %s: created_at timestamp is required", e.ID)
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		return fmt.Errorf("entry %s: updated_at cannot be before created_at", e.ID)
	}

	return nil
}

// Clone returns a deep copy of the entry, so presentation views never
// alias the stored record.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	if e.PasswordHistory != nil {
		c.PasswordHistory = append([]HistoryEntry(nil), e.PasswordHistory...)
	}
	return &c
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

package vault

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheMichaelB/pwvault/internal/models"
)

// EntryFields carries the initial values for a new entry.
type EntryFields struct {
	Title    string
	Username string
	Password string
	Notes    string
	Tags     []string
	Pinned   bool
}

// EntryUpdate carries a partial update; nil fields are left untouched.
type EntryUpdate struct {
	Title    *string
	Username *string
	Password *string
	Notes    *string
	Tags     *[]string
	Pinned   *bool
}

// AddEntry appends a new password entry and returns its id.
func (s *Store) AddEntry(v *models.Vault, fields EntryFields) (string, error) {
	return s.addEntry(v, models.TypePassword, fields)
}

// AddNote appends a new note entry. Notes carry no username or
// password.
func (s *Store) AddNote(v *models.Vault, title, content string) (string, error) {
	return s.addEntry(v, models.TypeNote, EntryFields{Title: title, Notes: content})
}

func (s *Store) addEntry(v *models.Vault, typ models.EntryType, fields EntryFields) (string, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return "", models.NewValidationError("title", "must not be empty")
	}

	tags := fields.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	entry := &models.Entry{
		ID:              uuid.NewString(),
		Type:            typ,
		Title:           fields.Title,
		Username:        fields.Username,
		Password:        fields.Password,
		Notes:           fields.Notes,
		Tags:            tags,
		Pinned:          fields.Pinned,
		CreatedAt:       now,
		UpdatedAt:       now,
		PasswordHistory: []models.HistoryEntry{},
	}

	v.Entries = append(v.Entries, entry)

	s.logger.WithFields(map[string]interface{}{
		"id":   entry.ID,
		"type": string(typ),
	}).Debug("Entry added")

	return entry.ID, nil
}

// UpdateEntry overwrites only the supplied fields of the entry with
// the given id. When the password changes and the previous value was
// non-empty, the old password is pushed to the front of the history,
// which is then truncated to the retention bound. Returns false when
// the id is unknown; a miss is an expected outcome, not an error.
func (s *Store) UpdateEntry(v *models.Vault, id string, update EntryUpdate) bool {
	entry := v.FindEntry(id)
	if entry == nil {
		return false
	}

	now := time.Now().UTC()

	if update.Password != nil && *update.Password != entry.Password {
		if entry.Password != "" {
			entry.PasswordHistory = append([]models.HistoryEntry{{
				Password:  entry.Password,
				ChangedAt: now,
			}}, entry.PasswordHistory...)

			if s.retention >= 0 && len(entry.PasswordHistory) > s.retention {
				entry.PasswordHistory = entry.PasswordHistory[:s.retention]
			}
		}
		entry.Password = *update.Password
	}

	if update.Title != nil {
		entry.Title = *update.Title
	}
	if update.Username != nil {
		entry.Username = *update.Username
	}
	if update.Notes != nil {
		entry.Notes = *update.Notes
	}
	if update.Tags != nil {
		entry.Tags = append([]string{}, (*update.Tags)...)
	}
	if update.Pinned != nil {
		entry.Pinned = *update.Pinned
	}

	// updated_at is monotonic non-decreasing per entry.
	if now.After(entry.UpdatedAt) {
		entry.UpdatedAt = now
	}

	return true
}

// UpdateNote is UpdateEntry restricted to a note's title and content.
// The entry's type is forced to note, so updating a password entry
// through this path converts it.
func (s *Store) UpdateNote(v *models.Vault, id string, title, content *string) bool {
	entry := v.FindEntry(id)
	if entry == nil {
		return false
	}
	entry.Type = models.TypeNote
	return s.UpdateEntry(v, id, EntryUpdate{Title: title, Notes: content})
}

// DeleteEntry removes the entry with the given id, preserving the
// order of the remaining entries. Returns false when the id is
// unknown.
func (s *Store) DeleteEntry(v *models.Vault, id string) bool {
	for i, e := range v.Entries {
		if e.ID == id {
			v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
			s.logger.WithField("id", id).Debug("Entry deleted")
			return true
		}
	}
	return false
}

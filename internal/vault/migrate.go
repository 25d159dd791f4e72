package vault

import (
	"github.com/TheMichaelB/pwvault/internal/models"
)

// Migrate upgrades a decoded vault to the current in-memory schema.
// The pass is forward-only: the next Save persists the latest schema
// and there is no downgrade path. Migrating an already-current vault
// changes nothing. Returns the number of entries that were touched.
func Migrate(v *models.Vault) int {
	migrated := 0
	for _, e := range v.Entries {
		if migrateEntry(e) {
			migrated++
		}
	}

	if v.Metadata.Version != models.SchemaVersion {
		v.Metadata.Version = models.SchemaVersion
	}

	return migrated
}

// migrateEntry fills fields absent from older on-disk schemas with
// their documented defaults:
//
//	type             -> "password"
//	tags             -> []
//	pinned           -> false (zero value)
//	password_history -> []
func migrateEntry(e *models.Entry) bool {
	changed := false

	if e.Type == "" {
		e.Type = models.TypePassword
		changed = true
	}
	if e.Tags == nil {
		e.Tags = []string{}
		changed = true
	}
	if e.PasswordHistory == nil {
		e.PasswordHistory = []models.HistoryEntry{}
		changed = true
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
		changed = true
	}

	return changed
}

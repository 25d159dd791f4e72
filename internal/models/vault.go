package models

import (
	"fmt"
	"time"

	"github.com/TheMichaelB/pwvault/internal/crypto"
)

// SchemaVersion identifies the current decrypted payload schema.
// Version "1.0" files predate kdf_params, tags, pinned flags and
// password history.
const SchemaVersion = "2.0"

// Vault is the decrypted record set. The caller owns it exclusively
// between an Open and a Save; all mutation happens in memory.
type Vault struct {
	Metadata Metadata `json:"metadata"`
	Entries  []*Entry `json:"entries"`
}

// Metadata describes the vault itself. KDFParams always mirrors the
// parameters of the vault's current on-disk representation.
type Metadata struct {
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	KDFParams *crypto.Params `json:"kdf_params,omitempty"`
}

// FindEntry returns the entry with the given id, or nil. A miss is an
// expected outcome, not an error.
func (v *Vault) FindEntry(id string) *Entry {
	for _, e := range v.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Validate checks the vault structure after decoding.
func (v *Vault) Validate() error {
	if v.Metadata.Version == "" {
		return fmt.Errorf("metadata version is required")
	}
	if v.Metadata.CreatedAt.IsZero() {
		return fmt.Errorf("metadata created_at is required")
	}

	seen := make(map[string]struct{}, len(v.Entries))
	for _, e := range v.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate entry id: %s", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

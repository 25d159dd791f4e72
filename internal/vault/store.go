// Package vault implements the encrypted credential store engine: a
// self-describing envelope format over an Argon2id-derived key and
// AES-256-GCM, with entry lifecycle and schema migration on top.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TheMichaelB/pwvault/internal/config"
	"github.com/TheMichaelB/pwvault/internal/crypto"
	"github.com/TheMichaelB/pwvault/internal/events"
	"github.com/TheMichaelB/pwvault/internal/models"
)

// Store is the vault engine. It owns no open file handles; every
// operation is a full read or full rewrite of the container. The
// caller owns the Vault value exclusively between Open and Save.
type Store struct {
	params    crypto.Params
	retention int
	logger    *events.Logger
}

// NewStore creates the engine from configuration.
func NewStore(cfg *config.Config, logger *events.Logger) *Store {
	return &Store{
		params:    cfg.KDF,
		retention: cfg.Vault.HistoryRetention,
		logger:    logger.WithField("component", "vault"),
	}
}

// Create initializes a new empty vault at path. It fails with
// ErrVaultExists if the path is already occupied.
func (s *Store) Create(path, passphrase string) (*models.Vault, error) {
	if err := validatePassphrase(passphrase); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrVaultExists, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat vault path: %w", err)
	}

	params := s.params
	v := &models.Vault{
		Metadata: models.Metadata{
			Version:   models.SchemaVersion,
			CreatedAt: time.Now().UTC(),
			KDFParams: &params,
		},
		Entries: []*models.Entry{},
	}

	if err := s.Save(path, v, passphrase); err != nil {
		return nil, err
	}

	s.logger.WithField("path", path).Info("Vault created")
	return v, nil
}

// Open reads and decrypts the vault at path, migrating older schemas
// to the current in-memory shape.
func (s *Store) Open(path, passphrase string) (*models.Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrVaultNotFound, path)
		}
		return nil, fmt.Errorf("read vault file: %w", err)
	}

	v, err := Decode(data, passphrase)
	if err != nil {
		return nil, err
	}

	migrated := Migrate(v)
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":     path,
		"entries":  len(v.Entries),
		"migrated": migrated,
	}).Debug("Vault opened")

	return v, nil
}

// Save encrypts the complete current state and rewrites the container
// atomically. The salt and nonce are regenerated; metadata is upgraded
// to the currently configured parameters. On failure the vault's
// metadata is left exactly as it was, still describing the on-disk
// file.
func (s *Store) Save(path string, v *models.Vault, passphrase string) (err error) {
	if err := validatePassphrase(passphrase); err != nil {
		return err
	}

	// The serialized payload must carry the current schema and
	// parameters, so stamp before Encode and roll back if anything
	// after it fails.
	params := s.params
	prevVersion := v.Metadata.Version
	prevParams := v.Metadata.KDFParams
	v.Metadata.Version = models.SchemaVersion
	v.Metadata.KDFParams = &params
	defer func() {
		if err != nil {
			v.Metadata.Version = prevVersion
			v.Metadata.KDFParams = prevParams
		}
	}()

	data, err := Encode(v, passphrase, params)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create vault directory: %w", err)
		}
	}

	// Write to a temp file, sync, then rename, so a crash never leaves
	// a half-written container behind.
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename vault file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":    path,
		"entries": len(v.Entries),
	}).Debug("Vault saved")

	return nil
}

// Export decrypts the vault at path and re-encrypts it at targetPath,
// normalizing it to the current schema with a fresh salt. Never a raw
// byte copy.
func (s *Store) Export(path, targetPath, passphrase string) error {
	v, err := s.Open(path, passphrase)
	if err != nil {
		return err
	}
	return s.Save(targetPath, v, passphrase)
}

// Import decrypts the vault at sourcePath and re-encrypts it at
// targetPath, returning the loaded vault.
func (s *Store) Import(sourcePath, targetPath, passphrase string) (*models.Vault, error) {
	v, err := s.Open(sourcePath, passphrase)
	if err != nil {
		return nil, err
	}
	if err := s.Save(targetPath, v, passphrase); err != nil {
		return nil, err
	}
	return v, nil
}

func validatePassphrase(passphrase string) error {
	if strings.TrimSpace(passphrase) == "" {
		return models.NewValidationError("passphrase", "must not be empty")
	}
	return nil
}

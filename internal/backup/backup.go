// Package backup rotates timestamped copies of the encrypted vault
// container. Backups are raw ciphertext copies; nothing here ever
// decrypts a vault.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/TheMichaelB/pwvault/internal/events"
)

const timestampLayout = "2006-01-02_15-04-05"

// Manager creates, lists, prunes and restores vault backups.
type Manager struct {
	dir        string
	maxBackups int
	logger     *events.Logger
}

// Info describes one backup file.
type Info struct {
	Path      string
	CreatedAt time.Time
}

// NewManager creates a backup manager storing backups in dir, keeping
// at most maxBackups per vault.
func NewManager(dir string, maxBackups int, logger *events.Logger) *Manager {
	return &Manager{
		dir:        dir,
		maxBackups: maxBackups,
		logger:     logger.WithField("component", "backup"),
	}
}

// Create copies the vault file to a timestamped backup and prunes old
// backups beyond the rotation count.
func (m *Manager) Create(vaultPath string) (string, error) {
	if _, err := os.Stat(vaultPath); err != nil {
		return "", fmt.Errorf("stat vault file: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	backupPath := filepath.Join(m.dir, backupName(vaultPath, time.Now()))
	if err := copyFile(vaultPath, backupPath); err != nil {
		return "", fmt.Errorf("copy vault to backup: %w", err)
	}

	m.logger.WithField("path", backupPath).Info("Backup created")

	if _, err := m.Prune(vaultPath); err != nil {
		m.logger.WithError(err).Warn("Failed to prune old backups")
	}

	return backupPath, nil
}

// List returns the backups for a vault, newest first.
func (m *Manager) List(vaultPath string) ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	stem, ext := splitVaultName(vaultPath)
	prefix := stem + "_"

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || filepath.Ext(name) != ext {
			continue
		}

		ts, err := time.ParseInLocation(timestampLayout,
			strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext), time.Local)
		if err != nil {
			// Not one of ours.
			continue
		}

		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, name),
			CreatedAt: ts,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Prune deletes backups beyond the rotation count, oldest first, and
// returns how many were removed.
func (m *Manager) Prune(vaultPath string) (int, error) {
	backups, err := m.List(vaultPath)
	if err != nil {
		return 0, err
	}

	if m.maxBackups < 1 || len(backups) <= m.maxBackups {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[m.maxBackups:] {
		if err := os.Remove(b.Path); err != nil {
			m.logger.WithError(err).WithField("path", b.Path).Warn("Failed to remove backup")
			continue
		}
		removed++
	}

	m.logger.WithField("removed", removed).Debug("Pruned backups")
	return removed, nil
}

// Restore copies a backup over the vault path. The current vault file,
// if any, is saved aside first.
func (m *Manager) Restore(backupPath, vaultPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup file: %w", err)
	}

	if _, err := os.Stat(vaultPath); err == nil {
		aside := vaultPath + ".pre-restore"
		if err := copyFile(vaultPath, aside); err != nil {
			return fmt.Errorf("save current vault aside: %w", err)
		}
	}

	if err := copyFile(backupPath, vaultPath); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"backup": backupPath,
		"vault":  vaultPath,
	}).Info("Backup restored")

	return nil
}

func backupName(vaultPath string, t time.Time) string {
	stem, ext := splitVaultName(vaultPath)
	return fmt.Sprintf("%s_%s%s", stem, t.Format(timestampLayout), ext)
}

func splitVaultName(vaultPath string) (stem, ext string) {
	base := filepath.Base(vaultPath)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

package backup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/pwvault/internal/backup"
	"github.com/TheMichaelB/pwvault/internal/events"
)

func testManager(t *testing.T, dir string, maxBackups int) *backup.Manager {
	t.Helper()
	logger := events.New(events.ErrorLevel, "text", nil)
	return backup.NewManager(dir, maxBackups, logger)
}

func writeVault(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vault.pwv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	vaultPath := writeVault(t, dir, "ciphertext-bytes")

	m := testManager(t, backupDir, 5)

	path, err := m.Create(vaultPath)
	require.NoError(t, err)
	assert.DirExists(t, backupDir)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ciphertext-bytes", string(data))

	base := filepath.Base(path)
	assert.Regexp(t, `^vault_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.pwv$`, base)
}

func TestCreateBackupMissingVault(t *testing.T) {
	dir := t.TempDir()
	m := testManager(t, filepath.Join(dir, "backups"), 5)

	_, err := m.Create(filepath.Join(dir, "nope.pwv"))
	assert.Error(t, err)
}

func seedBackups(t *testing.T, backupDir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(backupDir, 0700))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte(name), 0600))
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	vaultPath := writeVault(t, dir, "x")

	seedBackups(t, backupDir,
		"vault_2024-01-01_10-00-00.pwv",
		"vault_2024-03-01_10-00-00.pwv",
		"vault_2024-02-01_10-00-00.pwv",
		"other_2024-04-01_10-00-00.pwv", // different vault
		"vault_garbage.pwv",             // not a backup name
	)

	m := testManager(t, backupDir, 5)

	backups, err := m.List(vaultPath)
	require.NoError(t, err)
	require.Len(t, backups, 3)

	// Newest first.
	assert.Contains(t, backups[0].Path, "2024-03-01")
	assert.Contains(t, backups[1].Path, "2024-02-01")
	assert.Contains(t, backups[2].Path, "2024-01-01")
}

func TestListBackupsNoDir(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeVault(t, dir, "x")

	m := testManager(t, filepath.Join(dir, "missing"), 5)

	backups, err := m.List(vaultPath)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestPruneBackups(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	vaultPath := writeVault(t, dir, "x")

	seedBackups(t, backupDir,
		"vault_2024-01-01_10-00-00.pwv",
		"vault_2024-02-01_10-00-00.pwv",
		"vault_2024-03-01_10-00-00.pwv",
		"vault_2024-04-01_10-00-00.pwv",
	)

	m := testManager(t, backupDir, 2)

	removed, err := m.Prune(vaultPath)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	backups, err := m.List(vaultPath)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Contains(t, backups[0].Path, "2024-04-01")
	assert.Contains(t, backups[1].Path, "2024-03-01")
}

func TestPruneUnderLimit(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	vaultPath := writeVault(t, dir, "x")

	seedBackups(t, backupDir, "vault_2024-01-01_10-00-00.pwv")

	m := testManager(t, backupDir, 5)

	removed, err := m.Prune(vaultPath)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	vaultPath := writeVault(t, dir, "current")

	backupPath := filepath.Join(backupDir, "vault_2024-01-01_10-00-00.pwv")
	seedBackups(t, backupDir, "vault_2024-01-01_10-00-00.pwv")

	m := testManager(t, backupDir, 5)

	require.NoError(t, m.Restore(backupPath, vaultPath))

	data, err := os.ReadFile(vaultPath)
	require.NoError(t, err)
	assert.Equal(t, "vault_2024-01-01_10-00-00.pwv", string(data))

	// The replaced vault is saved aside.
	aside, err := os.ReadFile(vaultPath + ".pre-restore")
	require.NoError(t, err)
	assert.Equal(t, "current", string(aside))
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeVault(t, dir, "current")

	m := testManager(t, filepath.Join(dir, "backups"), 5)
	assert.Error(t, m.Restore(filepath.Join(dir, "nope.pwv"), vaultPath))
}

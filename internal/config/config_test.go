package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/pwvault/internal/config"
	"github.com/TheMichaelB/pwvault/internal/crypto"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 10, cfg.Vault.HistoryRetention)
	assert.Contains(t, cfg.Vault.Path, "vault.pwv")
	assert.Equal(t, crypto.DefaultParams(), cfg.KDF)
	assert.Equal(t, 5, cfg.Backup.MaxBackups)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "missing vault path",
			mutate:  func(c *config.Config) { c.Vault.Path = "" },
			wantErr: "vault.path",
		},
		{
			name:    "negative history retention",
			mutate:  func(c *config.Config) { c.Vault.HistoryRetention = -1 },
			wantErr: "history_retention",
		},
		{
			name:    "bad kdf params",
			mutate:  func(c *config.Config) { c.KDF.TimeCost = 0 },
			wantErr: "kdf",
		},
		{
			name:    "zero max backups",
			mutate:  func(c *config.Config) { c.Backup.MaxBackups = 0 },
			wantErr: "max_backups",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *config.Config) { c.Log.Level = "verbose" },
			wantErr: "log level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *config.Config) { c.Log.Format = "xml" },
			wantErr: "log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoaderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
vault:
  path: /tmp/custom.pwv
  history_retention: 3
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.pwv", cfg.Vault.Path)
	assert.Equal(t, 3, cfg.Vault.HistoryRetention)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset keys keep their defaults.
	assert.Equal(t, crypto.DefaultParams(), cfg.KDF)
	assert.Equal(t, 5, cfg.Backup.MaxBackups)
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := config.NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoaderInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0600))

	_, err := config.NewLoader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestLoaderEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0600))

	t.Setenv("PWVAULT_VAULT_HISTORY_RETENTION", "7")
	t.Setenv("PWVAULT_LOG_FORMAT", "json")

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Vault.HistoryRetention)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Vault.Path = filepath.Join(dir, "data", "vault.pwv")
	cfg.Backup.Dir = filepath.Join(dir, "backups")
	cfg.Log.File = filepath.Join(dir, "logs", "pwvault.log")

	require.NoError(t, cfg.EnsureDirectories())

	assert.DirExists(t, filepath.Join(dir, "data"))
	assert.DirExists(t, filepath.Join(dir, "backups"))
	assert.DirExists(t, filepath.Join(dir, "logs"))
}

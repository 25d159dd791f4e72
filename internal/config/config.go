package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TheMichaelB/pwvault/internal/crypto"
)

// Config holds all application configuration.
type Config struct {
	// Vault behavior
	Vault VaultConfig `json:"vault" mapstructure:"vault"`

	// Key derivation costs for newly saved vaults
	KDF crypto.Params `json:"kdf" mapstructure:"kdf"`

	// Backup rotation
	Backup BackupConfig `json:"backup" mapstructure:"backup"`

	// Logging
	Log LogConfig `json:"log" mapstructure:"log"`
}

// VaultConfig for the vault engine.
type VaultConfig struct {
	// Path is the default vault file location.
	Path string `json:"path" mapstructure:"path"`

	// HistoryRetention bounds password_history per entry.
	HistoryRetention int `json:"history_retention" mapstructure:"history_retention"`
}

// BackupConfig for backup rotation.
type BackupConfig struct {
	Dir        string `json:"dir" mapstructure:"dir"`
	MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // text, json
	File   string `json:"file" mapstructure:"file"`     // empty = stderr
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()

	return &Config{
		Vault: VaultConfig{
			Path:             filepath.Join(dataDir, "vault.pwv"),
			HistoryRetention: 10,
		},
		KDF: crypto.DefaultParams(),
		Backup: BackupConfig{
			Dir:        filepath.Join(dataDir, "backups"),
			MaxBackups: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".pwvault")
	}
	return ".pwvault"
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Vault.Path == "" {
		return errors.New("vault.path is required")
	}

	if c.Vault.HistoryRetention < 0 {
		return errors.New("vault.history_retention must not be negative")
	}

	if err := c.KDF.Validate(); err != nil {
		return fmt.Errorf("kdf: %w", err)
	}

	if c.Backup.MaxBackups < 1 {
		return errors.New("backup.max_backups must be positive")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Vault.Path),
		c.Backup.Dir,
	}

	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

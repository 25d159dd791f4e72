package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from file and environment.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a config loader. An empty configPath searches the
// default locations.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  "PWVAULT",
	}
}

// Load reads configuration from file and environment, on top of the
// defaults, and validates the result.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetEnvPrefix(l.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
	} else {
		v.SetConfigName("config")
		for _, dir := range l.defaultDirs() {
			v.AddConfigPath(dir)
		}
	}

	// A missing file in the search path is fine; an explicitly named
	// file must exist.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// defaultDirs returns the default config file locations.
func (l *Loader) defaultDirs() []string {
	dirs := []string{"."}

	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(homeDir, ".config", "pwvault"),
			filepath.Join(homeDir, ".pwvault"),
		)
	}

	return dirs
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("vault.path", cfg.Vault.Path)
	v.SetDefault("vault.history_retention", cfg.Vault.HistoryRetention)
	v.SetDefault("kdf.time_cost", cfg.KDF.TimeCost)
	v.SetDefault("kdf.memory_cost_kib", cfg.KDF.MemoryKiB)
	v.SetDefault("kdf.parallelism", cfg.KDF.Parallelism)
	v.SetDefault("kdf.hash_len", cfg.KDF.HashLen)
	v.SetDefault("backup.dir", cfg.Backup.Dir)
	v.SetDefault("backup.max_backups", cfg.Backup.MaxBackups)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

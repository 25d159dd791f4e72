package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/config"
	"github.com/TheMichaelB/pwvault/internal/events"
	"github.com/TheMichaelB/pwvault/internal/models"
	"github.com/TheMichaelB/pwvault/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "pwvault",
	Short: "Local encrypted credential store",
	Long: `pwvault keeps passwords and notes in a single local file,
encrypted end-to-end with a key derived from your passphrase.

Nothing ever leaves your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

var (
	cfg    *config.Config
	logger *events.Logger
	engine *vault.Store

	cfgFile    string
	vaultPath  string
	passphrase string
	jsonOutput bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file path")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "",
		"Vault file path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "",
		"Vault passphrase (will prompt if not provided)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Debug logging")
}

func initApp() error {
	loader := config.NewLoader(cfgFile)

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return err
	}

	level := events.ParseLevel(cfg.Log.Level)
	if verbose {
		level = events.DebugLevel
	}

	output := os.Stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		output = f
	}

	logger = events.New(level, cfg.Log.Format, output)
	engine = vault.NewStore(cfg, logger)

	if vaultPath == "" {
		vaultPath = cfg.Vault.Path
	}

	return nil
}

// openVault resolves the passphrase and decrypts the configured vault.
func openVault() (*models.Vault, string, error) {
	pass, err := resolvePassphrase("Passphrase: ")
	if err != nil {
		return nil, "", err
	}

	v, err := engine.Open(vaultPath, pass)
	if err != nil {
		return nil, "", err
	}
	return v, pass, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

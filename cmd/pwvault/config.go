package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a sample config file",
	Long: `Example prints an annotated config file with every setting at its
default value. Save it to ~/.pwvault/config.yaml and edit from there.`,
	Args: cobra.NoArgs,
	RunE: runConfigExample,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configExampleCmd)
}

func runConfigExample(cmd *cobra.Command, args []string) error {
	fmt.Print(exampleConfig())
	return nil
}

// exampleConfig renders every setting with its default so the sample
// never drifts from DefaultConfig.
func exampleConfig() string {
	d := config.DefaultConfig()

	return fmt.Sprintf(`# pwvault configuration. All settings are optional; the values below
# are the defaults. Every key can also be set via the environment,
# e.g. PWVAULT_VAULT_PATH.

vault:
  # Vault file location.
  path: %s

  # How many superseded passwords to keep per entry.
  history_retention: %d

# Argon2id cost parameters for newly saved vaults. Existing files keep
# the parameters recorded in them.
kdf:
  time_cost: %d
  memory_cost_kib: %d
  parallelism: %d
  hash_len: %d

backup:
  # Where 'pwvault backup create' puts timestamped copies.
  dir: %s

  # Backups kept per vault before pruning.
  max_backups: %d

log:
  # debug, info, warn or error.
  level: %s

  # text or json.
  format: %s

  # Log file path. Empty logs to stderr.
  file: ""
`,
		d.Vault.Path,
		d.Vault.HistoryRetention,
		d.KDF.TimeCost,
		d.KDF.MemoryKiB,
		d.KDF.Parallelism,
		d.KDF.HashLen,
		d.Backup.Dir,
		d.Backup.MaxBackups,
		d.Log.Level,
		d.Log.Format,
	)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/importers"
	"github.com/TheMichaelB/pwvault/internal/vault"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <export-file>",
	Short: "Import entries from another password manager's export",
	Long: `Migrate parses a plaintext export (generic CSV, KeePass, LastPass,
1Password or Bitwarden CSV, Bitwarden JSON) and adds its entries to
the vault. The format is detected from the file when not given.

Remember to delete the plaintext export afterwards.`,
	Example: `  pwvault migrate export.csv
  pwvault migrate bitwarden.json --format bitwarden-json`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

var migrateFormat string

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateFormat, "format", "f", "",
		"Export format (generic|keepass|lastpass|1password|bitwarden|bitwarden-json)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	var (
		parsed []importers.ParsedEntry
		result *importers.Result
	)

	if migrateFormat == "bitwarden-json" {
		parsed, result, err = importers.ImportBitwardenJSON(f)
	} else {
		parsed, result, err = importers.ImportCSV(f, importers.Format(migrateFormat))
	}
	if err != nil {
		return err
	}

	v, pass, err := openVault()
	if err != nil {
		return err
	}

	added := 0
	for _, p := range parsed {
		if _, err := engine.AddEntry(v, vault.EntryFields{
			Title:    p.Title,
			Username: p.Username,
			Password: p.Password,
			Notes:    p.Notes,
			Tags:     p.Tags,
		}); err != nil {
			printWarning("Skipping %q: %v", p.Title, err)
			continue
		}
		added++
	}

	if err := engine.Save(vaultPath, v, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"success":  true,
			"imported": added,
			"skipped":  result.Skipped,
			"errors":   result.Errors,
		})
		return nil
	}

	printSuccess("Imported %d entries", added)
	if result.Skipped > 0 {
		printInfo("Skipped %d non-login items", result.Skipped)
	}
	for _, e := range result.Errors {
		printWarning("%v", e)
	}

	return nil
}

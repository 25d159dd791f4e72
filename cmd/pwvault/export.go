package main

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <target>",
	Short: "Export the vault to another encrypted file",
	Long: `Export decrypts the vault and re-encrypts it at the target path with
a fresh salt, normalizing to the current schema. It is never a raw
byte copy.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import an encrypted vault file",
	Long: `Import decrypts an existing vault file and re-encrypts it at the
configured vault path.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	pass, err := resolvePassphrase("Passphrase: ")
	if err != nil {
		return err
	}

	if err := engine.Export(vaultPath, args[0], pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "target": args[0]})
	} else {
		printSuccess("Vault exported to %s", args[0])
	}

	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	pass, err := resolvePassphrase("Passphrase: ")
	if err != nil {
		return err
	}

	v, err := engine.Import(args[0], vaultPath, pass)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"success": true,
			"entries": len(v.Entries),
		})
	} else {
		printSuccess("Imported %d entries into %s", len(v.Entries), vaultPath)
	}

	return nil
}

package main

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new empty vault",
	Long: `Init creates a new encrypted vault file protected by a passphrase.

It fails if a vault already exists at the target path.`,
	Example: `  pwvault init
  pwvault init --vault /path/to/work.pwv`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	pass, err := confirmPassphrase()
	if err != nil {
		return err
	}

	if _, err := engine.Create(vaultPath, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"success": true,
			"path":    vaultPath,
		})
	} else {
		printSuccess("Vault created at %s", vaultPath)
	}

	return nil
}

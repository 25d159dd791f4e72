package main

import (
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/vault"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an entry",
	Long: `Update overwrites only the supplied fields. Changing the password
records the previous one in the entry's history.`,
	Example: `  pwvault update <id> --password
  pwvault update <id> --title "GitHub (work)" --pinned=true`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)

	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().String("username", "", "New username")
	updateCmd.Flags().Bool("password", false, "Prompt for a new password")
	updateCmd.Flags().String("notes", "", "New notes")
	updateCmd.Flags().StringSlice("tag", nil, "Replace tags")
	updateCmd.Flags().Bool("pinned", false, "Pin or unpin")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	v, pass, err := openVault()
	if err != nil {
		return err
	}

	var update vault.EntryUpdate

	flags := cmd.Flags()
	if flags.Changed("title") {
		s, _ := flags.GetString("title")
		update.Title = &s
	}
	if flags.Changed("username") {
		s, _ := flags.GetString("username")
		update.Username = &s
	}
	if flags.Changed("notes") {
		s, _ := flags.GetString("notes")
		update.Notes = &s
	}
	if flags.Changed("tag") {
		tags, _ := flags.GetStringSlice("tag")
		update.Tags = &tags
	}
	if flags.Changed("pinned") {
		b, _ := flags.GetBool("pinned")
		update.Pinned = &b
	}
	if changed, _ := flags.GetBool("password"); changed {
		newPass, err := promptPassphrase("New entry password: ")
		if err != nil {
			return err
		}
		update.Password = &newPass
	}

	if !engine.UpdateEntry(v, args[0], update) {
		printWarning("No entry with id %s", args[0])
		return nil
	}

	if err := engine.Save(vaultPath, v, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "id": args[0]})
	} else {
		printSuccess("Updated entry %s", args[0])
	}

	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	v, pass, err := openVault()
	if err != nil {
		return err
	}

	if !engine.DeleteEntry(v, args[0]) {
		printWarning("No entry with id %s", args[0])
		return nil
	}

	if err := engine.Save(vaultPath, v, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "id": args[0]})
	} else {
		printSuccess("Deleted entry %s", args[0])
	}

	return nil
}

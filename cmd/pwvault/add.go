package main

import (
	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/vault"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a password entry",
	Example: `  pwvault add GitHub --username me@example.com
  pwvault add Bank --username me --tag finance --pinned`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var noteCmd = &cobra.Command{
	Use:     "note <title>",
	Short:   "Add a note entry",
	Example: `  pwvault note "Wifi codes" --content "guest: hunter2"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNote,
}

var (
	addUsername string
	addPassword string
	addNotes    string
	addTags     []string
	addPinned   bool

	noteContent string
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(noteCmd)

	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "Username")
	addCmd.Flags().StringVar(&addPassword, "password", "", "Password (will prompt if not provided)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tags (repeatable)")
	addCmd.Flags().BoolVar(&addPinned, "pinned", false, "Pin the entry")

	noteCmd.Flags().StringVarP(&noteContent, "content", "c", "", "Note content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	v, pass, err := openVault()
	if err != nil {
		return err
	}

	entryPassword := addPassword
	if entryPassword == "" {
		entryPassword, err = promptPassphrase("Entry password: ")
		if err != nil {
			return err
		}
	}

	id, err := engine.AddEntry(v, vault.EntryFields{
		Title:    args[0],
		Username: addUsername,
		Password: entryPassword,
		Notes:    addNotes,
		Tags:     addTags,
		Pinned:   addPinned,
	})
	if err != nil {
		return err
	}

	if err := engine.Save(vaultPath, v, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "id": id})
	} else {
		printSuccess("Added entry %s (%s)", args[0], id)
	}

	return nil
}

func runNote(cmd *cobra.Command, args []string) error {
	v, pass, err := openVault()
	if err != nil {
		return err
	}

	id, err := engine.AddNote(v, args[0], noteContent)
	if err != nil {
		return err
	}

	if err := engine.Save(vaultPath, v, pass); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "id": id})
	} else {
		printSuccess("Added note %s (%s)", args[0], id)
	}

	return nil
}

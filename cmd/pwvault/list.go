package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/models"
	"github.com/TheMichaelB/pwvault/internal/vault"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	Long: `List shows a derived view of the vault: pinned entries first,
then title order. Passwords are never printed.`,
	Example: `  pwvault list
  pwvault list --tag finance --query github`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listQuery string
	listTag   string
	listType  string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter by title, username or notes")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by tag")
	listCmd.Flags().StringVar(&listType, "type", "", "Filter by type (password|note)")
}

func runList(cmd *cobra.Command, args []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	entries := vault.ListEntries(v, vault.ViewOptions{
		Query: listQuery,
		Tag:   listTag,
		Type:  models.EntryType(listType),
	})

	if jsonOutput {
		out := make([]map[string]interface{}, 0, len(entries))
		for _, e := range entries {
			out = append(out, map[string]interface{}{
				"id":         e.ID,
				"type":       e.Type,
				"title":      e.Title,
				"username":   e.Username,
				"tags":       e.Tags,
				"pinned":     e.Pinned,
				"updated_at": e.UpdatedAt,
			})
		}
		printJSON(out)
		return nil
	}

	if len(entries) == 0 {
		printInfo("No entries.")
		return nil
	}

	for _, e := range entries {
		pin := " "
		if e.Pinned {
			pin = "*"
		}
		line := fmt.Sprintf("%s %-36s  %-8s  %s", pin, e.ID, e.Type, e.Title)
		if e.Username != "" {
			line += "  <" + e.Username + ">"
		}
		if len(e.Tags) > 0 {
			line += "  [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Println(line)
	}

	return nil
}

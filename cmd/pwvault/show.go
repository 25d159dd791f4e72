package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry",
	Long:  `Show prints a single entry. The password is printed only with --reveal.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show an entry's password history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var showReveal bool

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)

	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "Print the password")
}

func runShow(cmd *cobra.Command, args []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	entry := v.FindEntry(args[0])
	if entry == nil {
		printWarning("No entry with id %s", args[0])
		return nil
	}

	if jsonOutput {
		out := map[string]interface{}{
			"id":         entry.ID,
			"type":       entry.Type,
			"title":      entry.Title,
			"username":   entry.Username,
			"notes":      entry.Notes,
			"tags":       entry.Tags,
			"pinned":     entry.Pinned,
			"created_at": entry.CreatedAt,
			"updated_at": entry.UpdatedAt,
		}
		if showReveal {
			out["password"] = entry.Password
		}
		printJSON(out)
		return nil
	}

	fmt.Printf("Title:    %s\n", entry.Title)
	fmt.Printf("Type:     %s\n", entry.Type)
	if entry.Username != "" {
		fmt.Printf("Username: %s\n", entry.Username)
	}
	if showReveal {
		fmt.Printf("Password: %s\n", entry.Password)
	} else if entry.Password != "" {
		fmt.Printf("Password: ******** (use --reveal)\n")
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(entry.Tags, ", "))
	}
	if entry.Notes != "" {
		fmt.Printf("Notes:\n%s\n", entry.Notes)
	}
	fmt.Printf("Created:  %s\n", entry.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated:  %s\n", entry.UpdatedAt.Format(time.RFC3339))

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	entry := v.FindEntry(args[0])
	if entry == nil {
		printWarning("No entry with id %s", args[0])
		return nil
	}

	if jsonOutput {
		printJSON(entry.PasswordHistory)
		return nil
	}

	if len(entry.PasswordHistory) == 0 {
		printInfo("No password history for %s.", entry.Title)
		return nil
	}

	for _, h := range entry.PasswordHistory {
		fmt.Printf("%s  %s\n", h.ChangedAt.Format(time.RFC3339), h.Password)
	}

	return nil
}

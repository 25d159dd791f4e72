package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/pwvault/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage vault backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a timestamped backup of the vault file",
	Args:  cobra.NoArgs,
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete backups beyond the rotation count",
	Args:  cobra.NoArgs,
	RunE:  runBackupPrune,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore the vault from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupPruneCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func backupManager() *backup.Manager {
	return backup.NewManager(cfg.Backup.Dir, cfg.Backup.MaxBackups, logger)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	path, err := backupManager().Create(vaultPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "path": path})
	} else {
		printSuccess("Backup created: %s", path)
	}
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	backups, err := backupManager().List(vaultPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(backups)
		return nil
	}

	if len(backups) == 0 {
		printInfo("No backups.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %s\n", b.CreatedAt.Format(time.RFC3339), b.Path)
	}
	return nil
}

func runBackupPrune(cmd *cobra.Command, args []string) error {
	removed, err := backupManager().Prune(vaultPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "removed": removed})
	} else {
		printSuccess("Removed %d old backups", removed)
	}
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if err := backupManager().Restore(args[0], vaultPath); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{"success": true, "vault": vaultPath})
	} else {
		printSuccess("Vault restored from %s", args[0])
	}
	return nil
}

// Package backup provides CLI commands for managing configuration backups.
package backup

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Manage backups of the Claude Code configuration tree.

A backup is a timestamped snapshot of your settings file, slash commands,
and hooks, stored as a directory under ~/.claude/backups/. Backups can
also be compressed to .tar.gz archives; restore handles both forms.`,
	Example: `  # Snapshot the current configuration
  claudectl backup create

  # Create a named backup
  claudectl backup create before-upgrade

  # List backups, newest first
  claudectl backup list

  # Inspect one backup
  claudectl backup show before-upgrade

  # Restore a backup into the live tree
  claudectl backup restore before-upgrade

  # Remove old backups, keeping the 5 most recent
  claudectl backup prune --keep 5

  # Compress a backup to .tar.gz
  claudectl backup archive before-upgrade

  See Also:
    claudectl backup list    - List available backups
    claudectl backup restore - Restore from a backup
    claudectl backup create  - Manually create a backup
    claudectl backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

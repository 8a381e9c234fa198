package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/backup"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"Number of backups to retain (default from backup.keep in the config file)")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove old backups beyond the retention count.

Keeps the most recent backups and removes the rest. A backup whose
removal fails is reported and counted as kept.`,
	Example: `  # Keep the default number of backups
  claudectl backup prune

  # Keep only the 3 most recent backups
  claudectl backup prune --keep 3

  # Remove all backups
  claudectl backup prune --keep 0

  See Also:
    claudectl backup list   - List available backups
    claudectl backup create - Create a new backup`,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	keep := pruneKeep
	if !cmd.Flags().Changed("keep") {
		keep = flags.BackupKeep()
	}
	return runPruneWithWriter(cmd.OutOrStdout(), cmd.Context(), keep)
}

func runPruneWithWriter(w io.Writer, ctx context.Context, keep int) error {
	if keep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewListService(cfg, backup.WithListLogger(logging.FromContext(ctx)))

	result, err := svc.Cleanup(keep)
	if err != nil {
		return errors.NewSystemError(err, "Check that the backup directory is writable")
	}

	if result.Cleaned == 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	fmt.Fprintf(w, "%s✓ removed %d old backup(s), %d kept%s\n",
		colorGreen, result.Cleaned, result.Kept, colorReset)
	return nil
}

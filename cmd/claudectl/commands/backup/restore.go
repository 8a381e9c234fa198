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

func init() {
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore from a backup",
	Long: `Restore a backup into the live configuration tree.

Copies the backed-up settings file, slash commands, and hooks back into
place. The commands directory is replaced wholesale: markdown commands
not present in the backup are removed. Compressed .tar.gz backups are
extracted transparently.

Restore steps are independent; a component that fails or is absent from
the backup is reported and skipped while the others proceed.`,
	Example: `  # Restore a named backup
  claudectl backup restore before-upgrade

  # Restore a compressed backup
  claudectl backup restore backup-2026-08-29T14-30-45

  See Also:
    claudectl backup list   - List available backups
    claudectl backup create - Snapshot before restoring`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	return runRestoreWithWriter(cmd.OutOrStdout(), cmd.Context(), args[0])
}

func runRestoreWithWriter(w io.Writer, ctx context.Context, name string) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewRestoreService(cfg, backup.WithRestoreLogger(logging.FromContext(ctx)))

	result, err := svc.Restore(name)
	if err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			return errors.NewUserError(err, "Run 'claudectl backup list' to see available backups")
		}
		if errors.Is(err, errors.ErrMissingName) {
			return errors.NewUserError(err, "Provide a backup name")
		}
		return errors.NewSystemError(err, "")
	}

	steps := []struct {
		label  string
		result backup.ComponentResult
	}{
		{"settings", result.Results.Settings},
		{"commands", result.Results.Commands},
		{"hooks", result.Results.Hooks},
	}
	for _, step := range steps {
		if step.result.Restored {
			fmt.Fprintf(w, "%s✓ %s: restored %d file(s)%s\n",
				colorGreen, step.label, step.result.Count, colorReset)
		} else {
			fmt.Fprintf(w, "%s- %s: %s%s\n",
				colorGray, step.label, step.result.Reason, colorReset)
		}
	}

	fmt.Fprintf(w, "\nRestored %d file(s) from %s\n", result.RestoredCount, result.BackupName)
	return nil
}

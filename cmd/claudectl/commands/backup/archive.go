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
	Cmd.AddCommand(archiveCmd)
}

var archiveCmd = &cobra.Command{
	Use:   "archive <name>",
	Short: "Compress a backup",
	Long: `Compress a directory backup into a .tar.gz archive.

The archive is written next to the backup directory; the directory
itself is left in place. Restore accepts both forms.`,
	Example: `  # Compress a backup
  claudectl backup archive before-upgrade

  # Reclaim the directory afterwards
  claudectl backup archive before-upgrade && rm -r ~/.claude/backups/before-upgrade

  See Also:
    claudectl backup list    - List available backups
    claudectl backup restore - Restore from a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	return runArchiveWithWriter(cmd.OutOrStdout(), cmd.Context(), args[0])
}

func runArchiveWithWriter(w io.Writer, ctx context.Context, name string) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewService(cfg, backup.WithLogger(logging.FromContext(ctx)))

	archivePath, err := svc.Archive(name)
	if err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			return errors.NewUserError(err, "Run 'claudectl backup list' to see available backups")
		}
		if errors.Is(err, backup.ErrDuplicateBackup) {
			return errors.NewUserError(err, "An archive with this name already exists")
		}
		return errors.NewSystemError(err, "")
	}

	fmt.Fprintf(w, "%s✓ archived to %s%s\n", colorGreen, archivePath, colorReset)
	return nil
}

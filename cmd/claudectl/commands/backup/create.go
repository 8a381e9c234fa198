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
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a backup",
	Long: `Create a snapshot of the Claude Code configuration tree.

Captures the settings file, slash commands, and hooks into a new backup
directory. With no name, a timestamp-derived name is used. Creating a
backup never modifies the live configuration.`,
	Example: `  # Create a backup with a timestamp name
  claudectl backup create

  # Create a named backup
  claudectl backup create before-upgrade

  See Also:
    claudectl backup list    - List available backups
    claudectl backup restore - Restore from a backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return runCreateWithWriter(cmd.OutOrStdout(), cmd.Context(), name)
}

func runCreateWithWriter(w io.Writer, ctx context.Context, name string) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewService(cfg, backup.WithLogger(logging.FromContext(ctx)))

	record, err := svc.Create(name)
	if err != nil {
		if errors.Is(err, backup.ErrDuplicateBackup) {
			return errors.NewUserError(err, "Pick a different name or remove the existing backup")
		}
		return errors.NewSystemError(err, "Check that the backup directory is writable")
	}

	if record.TotalFiles == 0 {
		fmt.Fprintf(w, "%s%s: no configuration files found to back up%s\n",
			colorYellow, record.Name, colorReset)
		return nil
	}

	fmt.Fprintf(w, "%s✓ created backup %s (%d files)%s\n",
		colorGreen, record.Name, record.TotalFiles, colorReset)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/install"
	"github.com/claudectl/claudectl/internal/logging"
)

var (
	installInclude []string
	installExclude []string
)

func init() {
	installCmd.Flags().StringArrayVar(&installInclude, "include", nil,
		"install only files matching this glob (repeatable)")
	installCmd.Flags().StringArrayVar(&installExclude, "exclude", nil,
		"skip files matching this glob (repeatable)")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <source-dir>",
	Short: "Install command definitions",
	Long: `Install slash command definitions from a source directory.

Copies markdown command files from the given directory into the live
commands directory. Use --include and --exclude globs to select a subset
by filename. Files already present are overwritten.`,
	Example: `  # Install every command in a directory
  claudectl install ./my-commands

  # Install only git-related commands
  claudectl install ./my-commands --include 'git-*.md'

  # Install everything except experimental commands
  claudectl install ./my-commands --exclude 'wip-*.md'

  See Also:
    claudectl backup create - Snapshot before installing`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	return runInstallWithWriter(cmd.OutOrStdout(), cmd.Context(), args[0])
}

func runInstallWithWriter(w io.Writer, ctx context.Context, sourceDir string) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	inst := install.New(cfg,
		install.WithInclude(installInclude...),
		install.WithExclude(installExclude...),
		install.WithInstallLogger(logging.FromContext(ctx)),
	)

	result, err := inst.Install(sourceDir)
	if err != nil {
		if errors.Is(err, install.ErrSourceNotFound) {
			return errors.NewUserError(err, "Check the source directory path")
		}
		return errors.NewSystemError(err, "")
	}

	for _, name := range result.Installed {
		fmt.Fprintf(w, "%s✓ installed %s%s\n", colorGreen, name, colorReset)
	}
	for _, name := range result.Failed {
		fmt.Fprintf(w, "%s✗ failed %s%s\n", colorYellow, name, colorReset)
	}

	if len(result.Installed) == 0 && len(result.Failed) == 0 {
		fmt.Fprintln(w, "No command files matched")
		return nil
	}

	fmt.Fprintf(w, "\nInstalled %d command(s)", len(result.Installed))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, ", skipped %d", len(result.Skipped))
	}
	if len(result.Failed) > 0 {
		fmt.Fprintf(w, ", failed %d", len(result.Failed))
	}
	fmt.Fprintln(w)

	return nil
}

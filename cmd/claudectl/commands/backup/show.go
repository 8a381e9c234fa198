package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/backup"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show backup details",
	Long: `Show detailed information about one backup.

Includes the metadata captured at creation time plus live existence and
readability checks against the filesystem.`,
	Example: `  # Inspect a backup
  claudectl backup show before-upgrade

  # Output as JSON
  claudectl backup show before-upgrade --json

  See Also:
    claudectl backup list    - List available backups
    claudectl backup restore - Restore from a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	return runShowWithWriter(cmd.OutOrStdout(), cmd.Context(), args[0])
}

func runShowWithWriter(w io.Writer, ctx context.Context, name string) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewListService(cfg, backup.WithListLogger(logging.FromContext(ctx)))

	details, err := svc.Details(name)
	if err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			return errors.NewUserError(err, "Run 'claudectl backup list' to see available backups")
		}
		return errors.NewSystemError(err, "")
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(details)
	}

	fmt.Fprintf(w, "%s%s%s\n", colorCyan+colorBold, details.Name, colorReset)
	fmt.Fprintf(w, "  Type:     %s\n", details.Type)
	fmt.Fprintf(w, "  Path:     %s\n", details.Path)
	fmt.Fprintf(w, "  Size:     %s\n", humanize.Bytes(uint64(details.Size)))
	fmt.Fprintf(w, "  Modified: %s\n", details.Modified.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Exists:   %v\n", details.Exists)
	fmt.Fprintf(w, "  Readable: %v\n", details.Readable)

	if meta := details.Metadata; meta != nil {
		fmt.Fprintf(w, "  Files:    %d (%s)\n", meta.TotalFiles, humanize.Bytes(uint64(meta.TotalSize)))
		fmt.Fprintf(w, "  Claude:   %s\n", meta.ClaudeVersion)
		fmt.Fprintf(w, "  System:   %s/%s (%s)\n", meta.System.Platform, meta.System.Arch, meta.System.Runtime)
	}

	if len(details.Components) > 0 {
		names := make([]string, 0, len(details.Components))
		for name := range details.Components {
			names = append(names, name)
		}
		slices.Sort(names)
		fmt.Fprintf(w, "  Components:\n")
		for _, name := range names {
			fmt.Fprintf(w, "    %s✓ %s%s\n", colorGreen, name, colorReset)
		}
	} else {
		fmt.Fprintf(w, "  %s(no component metadata)%s\n", colorGray, colorReset)
	}

	return nil
}

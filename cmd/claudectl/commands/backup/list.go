package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/backup"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all backups in the backup root, most recent first.

Shows both directory snapshots and compressed .tar.gz archives. The
listing is computed from the filesystem on each call; nothing is cached.`,
	Example: `  # List all backups
  claudectl backup list

  # Output as JSON
  claudectl backup list --json

  See Also:
    claudectl backup show    - Inspect one backup
    claudectl backup restore - Restore from a backup`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd.OutOrStdout(), cmd.Context())
}

func runListWithWriter(w io.Writer, ctx context.Context) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewListService(cfg, backup.WithListLogger(logging.FromContext(ctx)))

	entries, err := svc.List()
	if err != nil {
		return errors.NewSystemError(err, "Check that the backup directory is readable")
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Create one with: claudectl backup create")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sTYPE%s\t%sSIZE%s\t%sMODIFIED%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, e := range entries {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\t%s\n",
			colorGreen, e.Name, colorReset,
			e.Type,
			humanize.Bytes(uint64(e.Size)),
			e.Modified.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

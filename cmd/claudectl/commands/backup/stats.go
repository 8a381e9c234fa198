package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/backup"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
)

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backup statistics",
	Long: `Show aggregate statistics over all backups.

Reports the backup count, total and average size, the split between
directory and compressed backups, and the age range.`,
	Example: `  # Show statistics
  claudectl backup stats

  # Output as JSON
  claudectl backup stats --json

  See Also:
    claudectl backup list  - List available backups
    claudectl backup prune - Remove old backups`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	return runStatsWithWriter(cmd.OutOrStdout(), cmd.Context())
}

func runStatsWithWriter(w io.Writer, ctx context.Context) error {
	cfg, err := flags.ResolvePaths()
	if err != nil {
		return errors.Wrap(err, "resolving claude directory")
	}

	svc := backup.NewListService(cfg, backup.WithListLogger(logging.FromContext(ctx)))

	stats, err := svc.GetStats()
	if err != nil {
		return errors.NewSystemError(err, "Check that the backup directory is readable")
	}

	if statsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if stats.Count == 0 {
		fmt.Fprintln(w, "No backups available")
		return nil
	}

	fmt.Fprintf(w, "%sBackups%s\n", colorCyan+colorBold, colorReset)
	fmt.Fprintf(w, "  Count:      %d (%d directory, %d compressed)\n",
		stats.Count,
		stats.Types[backup.EntryTypeDirectory],
		stats.Types[backup.EntryTypeCompressed])
	fmt.Fprintf(w, "  Total size: %s\n", stats.TotalSizeHuman)
	fmt.Fprintf(w, "  Average:    %d bytes\n", stats.AverageSize)
	fmt.Fprintf(w, "  Oldest:     %s\n", stats.Oldest.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Newest:     %s\n", stats.Newest.Local().Format("2006-01-02 15:04:05"))

	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintf(c.OutOrStdout(), "claudectl %s (commit %s, built %s)\n",
			cmd.Version, cmd.Commit, cmd.Date)
	},
}

// versionString is the short form used for --version.
func versionString() string {
	return cmd.Version
}

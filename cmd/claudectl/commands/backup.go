package commands

import "github.com/claudectl/claudectl/cmd/claudectl/commands/backup"

func init() {
	rootCmd.AddCommand(backup.Cmd)
}

// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and the noun subpackages (backup, install).
package flags

import (
	"github.com/claudectl/claudectl/internal/config"
	"github.com/claudectl/claudectl/internal/paths"
)

// claudeDirFlag holds the value of the --claude-dir flag.
var claudeDirFlag string

// configClaudeDir holds the claude_dir value from the loaded config file.
var configClaudeDir string

// GetClaudeDirFlag returns the current value of the --claude-dir flag.
func GetClaudeDirFlag() string {
	return claudeDirFlag
}

// SetClaudeDirFlag sets the claude-dir flag value. The root command calls
// this after parsing; tests use it for programmatic override.
func SetClaudeDirFlag(dir string) {
	claudeDirFlag = dir
}

// SetConfigClaudeDir records the claude_dir from the config file so
// ResolvePaths can fall back to it.
func SetConfigClaudeDir(dir string) {
	configClaudeDir = dir
}

// backupKeep holds the retention count from the config file, -1 until set.
var backupKeep = -1

// SetBackupKeep records the backup.keep value from the loaded config.
func SetBackupKeep(keep int) {
	backupKeep = keep
}

// BackupKeep returns the configured retention count. Commands use it as
// the prune default when --keep is not given on the command line.
func BackupKeep() int {
	if backupKeep >= 0 {
		return backupKeep
	}
	return config.DefaultRetention
}

// ResolvePaths returns the path configuration for the current invocation.
// Precedence: --claude-dir flag, then claude_dir from the config file,
// then ~/.claude.
func ResolvePaths() (*paths.Config, error) {
	if claudeDirFlag != "" {
		return paths.New(claudeDirFlag)
	}
	if configClaudeDir != "" {
		return paths.New(configClaudeDir)
	}
	return paths.Default()
}

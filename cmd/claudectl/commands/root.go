// Package commands implements the CLI commands for claudectl.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudectl/claudectl/cmd/claudectl/commands/flags"
	"github.com/claudectl/claudectl/internal/config"
	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
)

// claudeDir holds the value of the --claude-dir flag.
var claudeDir string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// configLogFormat holds the log.format value from the loaded config file.
var configLogFormat string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&claudeDir, "claude-dir", "",
		"path to the Claude configuration directory (default: ~/.claude)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("claudectl version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	var cfg *config.Config
	cfg, configLoadErr = config.Load("")
	if configLoadErr == nil && cfg != nil {
		flags.SetConfigClaudeDir(cfg.ClaudeDir)
		flags.SetBackupKeep(cfg.Backup.Keep)
		configLogFormat = cfg.Log.Format
	}
}

var rootCmd = &cobra.Command{
	Use:   "claudectl",
	Short: "Manage Claude Code configuration backups",
	Long: `claudectl manages the ~/.claude configuration tree used by Claude Code.

It creates timestamped snapshots of your settings, slash commands, and
hooks, lists and inspects existing backups, restores any backup back into
the live tree, and prunes old snapshots beyond a retention count.

Backups live under ~/.claude/backups/, one directory per snapshot, each
carrying a metadata document describing what was captured.`,
	Example: `  # Snapshot the current configuration
  claudectl backup create

  # List available backups, newest first
  claudectl backup list

  # Restore a named backup
  claudectl backup restore backup-2026-08-29T14-30-45

  # Install command definitions from a directory
  claudectl install ./my-commands

  See Also: claudectl backup, claudectl install`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("CLAUDECTL_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// The command line wins; the config file supplies the default
	format := logFormat
	if !cmd.Root().PersistentFlags().Changed("log-format") && configLogFormat != "" {
		format = configLogFormat
	}

	var primaryHandler slog.Handler
	switch logging.Format(format) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig propagates flag values and surfaces config load failures.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	flags.SetClaudeDirFlag(claudeDir)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/claudectl/claudectl/internal/logging"
)

func TestSetupLogging_ConfigFormat(t *testing.T) {
	origLogger := slog.Default()
	origFormat := configLogFormat
	t.Cleanup(func() {
		slog.SetDefault(origLogger)
		configLogFormat = origFormat
	})

	var buf bytes.Buffer
	rootCmd.SetErr(&buf)

	// log.format from the config file applies when the flag is unset
	configLogFormat = "json"
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	if _, ok := slog.Default().Handler().(*slog.JSONHandler); !ok {
		t.Errorf("handler = %T, want JSON from config", slog.Default().Handler())
	}

	// Without a config value the text handler is the default
	configLogFormat = ""
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	if _, ok := slog.Default().Handler().(*logging.Handler); !ok {
		t.Errorf("handler = %T, want text handler", slog.Default().Handler())
	}
}

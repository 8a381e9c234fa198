package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	r := slog.NewRecord(time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), slog.LevelInfo, "backup created", 0)
	r.AddAttrs(slog.String("name", "backup-2026-01-15T10-30-00"), slog.Int("files", 3))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"INFO", "backup created", "name=backup-2026-01-15T10-30-00", "files=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name    string
		min     slog.Level
		level   slog.Level
		enabled bool
	}{
		{"debug at info min", slog.LevelInfo, slog.LevelDebug, false},
		{"info at info min", slog.LevelInfo, slog.LevelInfo, true},
		{"error at info min", slog.LevelInfo, slog.LevelError, true},
		{"trace at trace min", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&buf, &slog.HandlerOptions{Level: tt.min})
			if got := h.Enabled(context.Background(), tt.level); got != tt.enabled {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.enabled)
			}
		})
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)

	derived := base.WithAttrs([]slog.Attr{slog.String("component", "restore")})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "step complete", 0)
	if err := derived.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if !strings.Contains(buf.String(), "component=restore") {
		t.Errorf("derived handler output missing attr: %q", buf.String())
	}

	// Base handler must be unaffected
	buf.Reset()
	if err := base.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "component=restore") {
		t.Error("base handler leaked derived attrs")
	}
}

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	mh := NewMultiHandler(
		NewHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	logger := slog.New(mh)
	logger.Info("info only")
	logger.Warn("both")

	if !strings.Contains(a.String(), "info only") {
		t.Error("text handler missing info record")
	}
	if strings.Contains(b.String(), "info only") {
		t.Error("warn-level JSON handler received info record")
	}
	if !strings.Contains(a.String(), "both") || !strings.Contains(b.String(), "both") {
		t.Error("warn record not fanned out to both handlers")
	}
}

func TestSupportsColor_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if supportsColor(true) {
		t.Error("NO_COLOR set but color reported as supported")
	}
}

func TestSupportsColor_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if supportsColor(true) {
		t.Error("TERM=dumb but color reported as supported")
	}
}

func TestSupportsColor_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	if SupportsColor(&buf) {
		t.Error("bytes.Buffer reported as color-capable")
	}
}

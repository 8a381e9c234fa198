package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestNew(t *testing.T) {
	cfg, err := New("/home/user/.claude")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ClaudeDir", cfg.ClaudeDir(), "/home/user/.claude"},
		{"SettingsPath", cfg.SettingsPath(), "/home/user/.claude/settings.json"},
		{"CommandsDir", cfg.CommandsDir(), "/home/user/.claude/commands"},
		{"HooksDir", cfg.HooksDir(), "/home/user/.claude/hooks"},
		{"BackupsDir", cfg.BackupsDir(), "/home/user/.claude/backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("New(\"\") error = %v, want ErrInvalidPath", err)
	}
}

func TestNew_CleansPath(t *testing.T) {
	cfg, err := New("/home/user//.claude/")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ClaudeDir() != "/home/user/.claude" {
		t.Errorf("ClaudeDir() = %q, want cleaned path", cfg.ClaudeDir())
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	if cfg.ClaudeDir() != filepath.Join(home, ".claude") {
		t.Errorf("ClaudeDir() = %q", cfg.ClaudeDir())
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}

	// Idempotent
	if err := EnsureDir(target, 0); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}

func TestEnsureDir_CustomPerm(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "private")

	if err := EnsureDir(target, 0o700); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o700 {
		t.Errorf("perm = %o, want 0700", info.Mode().Perm())
	}
}

package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Well-known names inside the Claude configuration directory.
const (
	// SettingsFilename is the single configuration file.
	SettingsFilename = "settings.json"

	// CommandsDirname holds slash command definitions (*.md).
	CommandsDirname = "commands"

	// HooksDirname holds hook scripts (*.sh are executable).
	HooksDirname = "hooks"

	// BackupsDirname is the root under which backup snapshots are stored.
	BackupsDirname = "backups"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// Config resolves the fixed set of filesystem locations inside a Claude
// configuration directory. Construct one explicitly and pass it to the
// services that need it; there is no implicit global instance.
type Config struct {
	claudeDir string
}

// New creates a Config rooted at the given Claude configuration directory.
// Relative paths are allowed (useful in tests); they are cleaned but not
// resolved against the working directory.
func New(claudeDir string) (*Config, error) {
	if claudeDir == "" {
		return nil, errors.Wrap(ErrInvalidPath, "claude directory is empty")
	}
	return &Config{claudeDir: filepath.Clean(claudeDir)}, nil
}

// Default creates a Config rooted at ~/.claude.
func Default() (*Config, error) {
	home, err := ResolveHome()
	if err != nil {
		return nil, err
	}
	return New(filepath.Join(home, ".claude"))
}

// ClaudeDir returns the root configuration directory.
func (c *Config) ClaudeDir() string {
	return c.claudeDir
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.claudeDir, SettingsFilename)
}

// CommandsDir returns the directory holding slash command definitions.
func (c *Config) CommandsDir() string {
	return filepath.Join(c.claudeDir, CommandsDirname)
}

// HooksDir returns the directory holding hook scripts.
func (c *Config) HooksDir() string {
	return filepath.Join(c.claudeDir, HooksDirname)
}

// BackupsDir returns the backup root directory.
func (c *Config) BackupsDir() string {
	return filepath.Join(c.claudeDir, BackupsDirname)
}

// EnsureDir creates the directory and any necessary parents with specified
// permissions. If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

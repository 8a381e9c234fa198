package backup

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/paths"
	"github.com/claudectl/claudectl/pkg/fileutil"
)

// File modes applied to restored hook scripts by extension.
const (
	hookExecutableMode = 0o755
	hookRegularMode    = 0o644
)

// RestoreService copies a backup's captured components back into the live
// configuration tree. It only ever reads from the backup root.
type RestoreService struct {
	paths  *paths.Config
	logger *slog.Logger
}

// RestoreOption configures a RestoreService.
type RestoreOption func(*RestoreService)

// WithRestoreLogger sets the logger used for per-file warnings.
func WithRestoreLogger(logger *slog.Logger) RestoreOption {
	return func(s *RestoreService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRestoreService creates a RestoreService over the given path configuration.
func NewRestoreService(cfg *paths.Config, opts ...RestoreOption) *RestoreService {
	s := &RestoreService{
		paths:  cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore resolves a named backup (compressed archive first, then directory)
// and copies its settings, commands, and hooks back into the live tree. The
// three steps run independently: a failed step never blocks the next, and
// there is no rollback.
//
// Compressed backups are extracted to a temporary directory first and
// restored from there; the temporary directory is removed before returning.
func (s *RestoreService) Restore(name string) (*RestoreResult, error) {
	if name == "" {
		return nil, errors.ErrMissingName
	}

	root := s.paths.BackupsDir()
	dirPath := filepath.Join(root, name)
	archivePath := dirPath + ArchiveSuffix

	// Path the result reports: where the backup lives in the root.
	sourcePath := dirPath
	contentPath := dirPath

	switch {
	case fileutil.Exists(archivePath):
		sourcePath = archivePath
		tmp, err := os.MkdirTemp("", "claudectl-restore-*")
		if err != nil {
			return nil, errors.Wrap(err, "creating extraction directory")
		}
		defer os.RemoveAll(tmp)

		if err := extractArchive(archivePath, tmp); err != nil {
			return nil, errors.Wrapf(err, "extracting backup archive %s", name)
		}

		// Archives produced by this tool are rooted at the backup contents;
		// tolerate archives carrying a single top-level directory instead.
		contentPath = tmp
		if nested := filepath.Join(tmp, name); fileutil.IsDir(nested) {
			contentPath = nested
		}

	case fileutil.IsDir(dirPath):
		// Plain directory backup, restore in place.

	default:
		return nil, errors.Wrapf(ErrBackupNotFound, "%s", name)
	}

	metadata := readMetadata(contentPath, s.logger)
	if metadata == nil {
		s.logger.Warn("backup has no readable metadata, restoring anyway", "name", name)
	}

	restored := 0

	settings, n := s.restoreSettings(contentPath)
	restored += n

	commands, n := s.restoreCommands(contentPath)
	restored += n

	hooks, n := s.restoreHooks(contentPath)
	restored += n

	s.logger.Info("restore complete", "name", name, "restored", restored)

	return &RestoreResult{
		BackupName:    name,
		BackupPath:    sourcePath,
		RestoredCount: restored,
		Results: RestoreSteps{
			Settings: settings,
			Commands: commands,
			Hooks:    hooks,
		},
		Metadata: metadata,
	}, nil
}

// restoreSettings copies the captured settings file into the live tree.
func (s *RestoreService) restoreSettings(backupPath string) (ComponentResult, int) {
	src := filepath.Join(backupPath, paths.SettingsFilename)
	if !fileutil.Exists(src) {
		return ComponentResult{Restored: false, Reason: "No settings file in backup"}, 0
	}

	if err := paths.EnsureDir(s.paths.ClaudeDir(), 0); err != nil {
		s.logger.Warn("cannot create configuration directory", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to copy settings file"}, 0
	}

	if err := fileutil.CopyFile(src, s.paths.SettingsPath(), hookRegularMode); err != nil {
		s.logger.Warn("failed to restore settings file", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to copy settings file"}, 0
	}

	return ComponentResult{Restored: true, Count: 1}, 1
}

// restoreCommands replaces the live command set with the backup's commands.
// Whenever the backup carries a commands subdirectory, every markdown file
// currently in the live directory is cleared first; this is a full-replace,
// not a merge. Clearing failures are warnings and do not stop the copy phase.
func (s *RestoreService) restoreCommands(backupPath string) (ComponentResult, int) {
	backupCommands := filepath.Join(backupPath, paths.CommandsDirname)
	if !fileutil.IsDir(backupCommands) {
		return ComponentResult{Restored: false, Reason: "No commands in backup"}, 0
	}

	liveDir := s.paths.CommandsDir()
	if err := paths.EnsureDir(liveDir, 0); err != nil {
		s.logger.Warn("cannot create commands directory", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to restore commands"}, 0
	}

	s.clearMarkdown(liveDir)

	entries, err := os.ReadDir(backupCommands)
	if err != nil {
		s.logger.Warn("cannot read commands in backup", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to restore commands"}, 0
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		src := filepath.Join(backupCommands, entry.Name())
		dst := filepath.Join(liveDir, entry.Name())
		if err := fileutil.CopyFile(src, dst, hookRegularMode); err != nil {
			s.logger.Warn("failed to restore command", "file", entry.Name(), "error", err)
			continue
		}
		count++
	}

	return ComponentResult{Restored: true, Count: count}, count
}

// restoreHooks copies every hook file, marking *.sh executable.
func (s *RestoreService) restoreHooks(backupPath string) (ComponentResult, int) {
	backupHooks := filepath.Join(backupPath, paths.HooksDirname)
	if !fileutil.IsDir(backupHooks) {
		return ComponentResult{Restored: false, Reason: "No hooks in backup"}, 0
	}

	liveDir := s.paths.HooksDir()
	if err := paths.EnsureDir(liveDir, 0); err != nil {
		s.logger.Warn("cannot create hooks directory", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to restore hooks"}, 0
	}

	entries, err := os.ReadDir(backupHooks)
	if err != nil {
		s.logger.Warn("cannot read hooks in backup", "error", err)
		return ComponentResult{Restored: false, Reason: "Failed to restore hooks"}, 0
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mode := os.FileMode(hookRegularMode)
		if strings.HasSuffix(entry.Name(), ".sh") {
			mode = hookExecutableMode
		}
		src := filepath.Join(backupHooks, entry.Name())
		dst := filepath.Join(liveDir, entry.Name())
		if err := fileutil.CopyFile(src, dst, mode); err != nil {
			s.logger.Warn("failed to restore hook", "file", entry.Name(), "error", err)
			continue
		}
		count++
	}

	return ComponentResult{Restored: true, Count: count}, count
}

// clearMarkdown removes every *.md file directly inside dir.
// Failures are logged and skipped.
func (s *RestoreService) clearMarkdown(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("cannot scan live commands for clearing", "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to clear existing command", "file", entry.Name(), "error", err)
		}
	}
}

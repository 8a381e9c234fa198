package backup

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/paths"
	"github.com/claudectl/claudectl/pkg/fileutil"
)

// Service creates backup snapshots of a Claude configuration tree.
type Service struct {
	paths  *paths.Config
	logger *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for timestamp-derived names.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a backup Service over the given path configuration.
func NewService(cfg *paths.Config, opts ...ServiceOption) *Service {
	s := &Service{
		paths:  cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create snapshots the settings file, commands directory, and hooks directory
// into a new directory under the backup root and writes the metadata record
// last. If name is empty a timestamp-derived name is used.
//
// Individual file copy failures are logged as warnings and excluded from the
// counts; the call only fails outright on a duplicate name or when the backup
// directory itself cannot be created.
func (s *Service) Create(name string) (*Record, error) {
	if name == "" {
		name = timestampName(s.now())
	}

	backupPath := filepath.Join(s.paths.BackupsDir(), name)
	if fileutil.Exists(backupPath) || fileutil.Exists(backupPath+ArchiveSuffix) {
		return nil, errors.Wrapf(ErrDuplicateBackup, "%s", name)
	}

	if err := paths.EnsureDir(s.paths.BackupsDir(), 0); err != nil {
		return nil, errors.Wrap(err, "creating backup root")
	}
	if !fileutil.IsWritable(s.paths.BackupsDir()) {
		return nil, errors.Newf("backup root %s is not writable", s.paths.BackupsDir())
	}
	if err := os.MkdirAll(backupPath, paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	components := make(map[string]bool)
	var totalFiles int
	var totalSize int64

	record := func(component string, files int, size int64) {
		if componentCaptured(files) {
			components[component] = true
		}
		totalFiles += files
		totalSize += size
	}

	files, size := s.captureSettings(backupPath)
	record(ComponentSettings, files, size)

	files, size = s.captureDir(s.paths.CommandsDir(), filepath.Join(backupPath, paths.CommandsDirname), ComponentCommands)
	record(ComponentCommands, files, size)

	files, size = s.captureDir(s.paths.HooksDir(), filepath.Join(backupPath, paths.HooksDirname), ComponentHooks)
	record(ComponentHooks, files, size)

	meta := &Metadata{
		Name:          name,
		Timestamp:     s.now().UTC(),
		Components:    components,
		TotalFiles:    totalFiles,
		TotalSize:     totalSize,
		ClaudeVersion: detectClaudeVersion(),
		System:        currentSystem(),
	}

	// Metadata goes in last: its presence marks a fully populated backup.
	if err := fileutil.AtomicWriteJSON(filepath.Join(backupPath, MetadataFilename), meta); err != nil {
		return nil, errors.Wrap(err, "writing backup metadata")
	}

	s.logger.Info("backup created",
		"name", name,
		"files", totalFiles,
		"bytes", totalSize)

	return &Record{
		Name:       name,
		Path:       backupPath,
		Components: components,
		TotalFiles: totalFiles,
		TotalSize:  totalSize,
		Metadata:   meta,
	}, nil
}

// captureSettings copies the settings file into the backup directory.
// Returns the number of files captured (0 or 1) and their byte size.
func (s *Service) captureSettings(backupPath string) (int, int64) {
	src := s.paths.SettingsPath()

	info, err := os.Stat(src)
	if err != nil || info.IsDir() {
		return 0, 0
	}
	if !fileutil.IsReadable(src) {
		s.logger.Warn("settings file not readable, skipping", "path", src)
		return 0, 0
	}

	dst := filepath.Join(backupPath, paths.SettingsFilename)
	if err := fileutil.CopyFile(src, dst, 0); err != nil {
		s.logger.Warn("failed to back up settings file", "path", src, "error", err)
		return 0, 0
	}

	return 1, info.Size()
}

// captureDir copies every regular file directly inside srcDir into dstDir,
// skipping files that cannot be copied. Returns successful file count and
// byte sum.
func (s *Service) captureDir(srcDir, dstDir, component string) (int, int64) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cannot read component directory, skipping", "component", component, "error", err)
		}
		return 0, 0
	}

	var files int
	var size int64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if files == 0 {
			if err := paths.EnsureDir(dstDir, 0); err != nil {
				s.logger.Warn("cannot create component directory in backup", "component", component, "error", err)
				return 0, 0
			}
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to stat file, skipping", "path", src, "error", err)
			continue
		}

		if err := fileutil.CopyFile(src, dst, 0); err != nil {
			s.logger.Warn("failed to back up file, skipping", "path", src, "error", err)
			continue
		}

		files++
		size += info.Size()
	}

	return files, size
}

// Archive compresses an existing directory backup into <name>.tar.gz next to
// it in the backup root. The directory backup is left in place.
func (s *Service) Archive(name string) (string, error) {
	if name == "" {
		return "", errors.ErrMissingName
	}

	backupPath := filepath.Join(s.paths.BackupsDir(), name)
	if !fileutil.IsDir(backupPath) {
		return "", errors.Wrapf(ErrBackupNotFound, "%s", name)
	}

	archivePath := backupPath + ArchiveSuffix
	if fileutil.Exists(archivePath) {
		return "", errors.Wrapf(ErrDuplicateBackup, "%s already archived", name)
	}

	if err := writeArchive(backupPath, archivePath); err != nil {
		return "", errors.Wrapf(err, "archiving backup %s", name)
	}

	s.logger.Info("backup archived", "name", name, "archive", archivePath)
	return archivePath, nil
}

// timestampName derives a backup name from t: the UTC ISO-8601 form with
// ':' and '.' flattened to '-' and fractional seconds dropped, so the name
// is safe as a directory name on every platform.
func timestampName(t time.Time) string {
	return "backup-" + t.UTC().Format("2006-01-02T15-04-05")
}

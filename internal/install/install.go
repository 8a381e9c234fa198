// Package install copies command definitions into the live configuration
// tree. Sources are plain directories of markdown files; selection is by
// filename glob, include first, then exclude.
package install

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
	"github.com/claudectl/claudectl/internal/paths"
	"github.com/claudectl/claudectl/pkg/fileutil"
)

const commandFileMode fs.FileMode = 0o644

// ErrSourceNotFound indicates the source directory does not exist or is not
// a directory.
var ErrSourceNotFound = errors.New("source directory not found")

// Installer copies command files from a source directory into the commands
// directory of a configuration tree.
type Installer struct {
	paths   *paths.Config
	include []string
	exclude []string
	logger  *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithInclude restricts installation to filenames matching at least one of
// the given globs. No includes means every markdown file qualifies.
func WithInclude(globs ...string) Option {
	return func(i *Installer) {
		i.include = append(i.include, globs...)
	}
}

// WithExclude skips filenames matching any of the given globs. Excludes are
// applied after includes.
func WithExclude(globs ...string) Option {
	return func(i *Installer) {
		i.exclude = append(i.exclude, globs...)
	}
}

// WithInstallLogger sets the logger used for progress and warnings.
func WithInstallLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// New creates an Installer targeting the given configuration tree.
func New(cfg *paths.Config, opts ...Option) *Installer {
	inst := &Installer{
		paths:  cfg,
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Result reports the outcome of one Install call.
type Result struct {
	// Installed names the files copied into the commands directory.
	Installed []string `json:"installed"`

	// Skipped names source files excluded by globbing.
	Skipped []string `json:"skipped"`

	// Failed names source files whose copy failed.
	Failed []string `json:"failed"`
}

// Install scans sourceDir for markdown command files and copies the selected
// ones into the commands directory. Individual copy failures are logged and
// recorded but do not abort the run.
func (i *Installer) Install(sourceDir string) (*Result, error) {
	if !fileutil.IsDir(sourceDir) {
		return nil, errors.Wrapf(ErrSourceNotFound, "%s", sourceDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading source directory %s", sourceDir)
	}

	dstDir := i.paths.CommandsDir()
	if err := paths.EnsureDir(dstDir, paths.DefaultDirPerm); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".md" {
			continue
		}
		if !i.selected(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		src := filepath.Join(sourceDir, name)
		dst := filepath.Join(dstDir, name)
		if err := fileutil.CopyFile(src, dst, commandFileMode); err != nil {
			i.logger.Warn("failed to install command", "file", name, "error", err)
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Installed = append(result.Installed, name)
	}

	i.logger.Info("commands installed",
		"source", sourceDir,
		"installed", len(result.Installed),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)

	return result, nil
}

// selected applies include globs then exclude globs to a filename.
func (i *Installer) selected(name string) bool {
	if len(i.include) > 0 {
		matched := false
		for _, glob := range i.include {
			if ok, err := filepath.Match(glob, name); err == nil && ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, glob := range i.exclude {
		if ok, err := filepath.Match(glob, name); err == nil && ok {
			return false
		}
	}
	return true
}

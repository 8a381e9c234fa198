package backup

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/paths"
	"github.com/claudectl/claudectl/pkg/fileutil"
)

// ListService enumerates, inspects, and prunes the backup root.
type ListService struct {
	paths  *paths.Config
	logger *slog.Logger
}

// ListOption configures a ListService.
type ListOption func(*ListService)

// WithListLogger sets the logger used for per-entry warnings.
func WithListLogger(logger *slog.Logger) ListOption {
	return func(s *ListService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewListService creates a ListService over the given path configuration.
func NewListService(cfg *paths.Config, opts ...ListOption) *ListService {
	s := &ListService{
		paths:  cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List scans the backup root and returns the inventory sorted by
// modification time, newest first. A missing root yields an empty
// inventory; a root that exists but cannot be read yields an error
// matching ErrScanFailed.
//
// Directory entries carry a recursively summed size and a best-effort
// parsed metadata document (nil on absence or corruption). Compressed
// entries use the archive file's own size. Hidden directories and loose
// files are excluded.
func (s *ListService) List() ([]InventoryEntry, error) {
	root := s.paths.BackupsDir()

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []InventoryEntry{}, nil
		}
		return nil, errors.Wrapf(ErrScanFailed, "%s: %v", root, err)
	}

	inventory := make([]InventoryEntry, 0, len(dirEntries))

	for _, entry := range dirEntries {
		name := entry.Name()
		fullPath := filepath.Join(root, name)

		switch {
		case !entry.IsDir() && strings.HasSuffix(name, ArchiveSuffix):
			info, err := entry.Info()
			if err != nil {
				s.logger.Warn("cannot stat archive, skipping", "path", fullPath, "error", err)
				continue
			}
			inventory = append(inventory, InventoryEntry{
				Name:     strings.TrimSuffix(name, ArchiveSuffix),
				Type:     EntryTypeCompressed,
				Size:     info.Size(),
				Modified: info.ModTime(),
				Path:     fullPath,
			})

		case entry.IsDir() && !strings.HasPrefix(name, "."):
			info, err := entry.Info()
			if err != nil {
				s.logger.Warn("cannot stat backup directory, skipping", "path", fullPath, "error", err)
				continue
			}
			size, err := fileutil.DirSize(fullPath)
			if err != nil {
				s.logger.Warn("partial size for backup directory", "path", fullPath, "error", err)
			}
			inventory = append(inventory, InventoryEntry{
				Name:     name,
				Type:     EntryTypeDirectory,
				Size:     size,
				Modified: info.ModTime(),
				Path:     fullPath,
				Metadata: readMetadata(fullPath, s.logger),
			})

			// Hidden directories and loose files are not backups.
		}
	}

	// Newest first; stable so equal mtimes keep directory order.
	slices.SortStableFunc(inventory, func(a, b InventoryEntry) int {
		return b.Modified.Compare(a.Modified)
	})

	return inventory, nil
}

// Find returns the inventory entry with the exact name, or nil.
func (s *ListService) Find(name string) (*InventoryEntry, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// Details resolves a named backup and augments it with live existence and
// readability checks. Fails with ErrBackupNotFound when the name does not
// resolve.
func (s *ListService) Details(name string) (*Details, error) {
	entry, err := s.Find(name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.Wrapf(ErrBackupNotFound, "%s", name)
	}

	details := &Details{
		InventoryEntry: *entry,
		Exists:         fileutil.Exists(entry.Path),
		Readable:       fileutil.IsReadable(entry.Path),
	}
	if entry.Metadata != nil {
		details.Components = entry.Metadata.Components
	}
	return details, nil
}

// Cleanup retains the keep most recently modified backups and removes the
// rest. Individual removal failures are logged and the entry counts as
// kept; they never halt the pass.
func (s *ListService) Cleanup(keep int) (*CleanupResult, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	cleaned := 0
	for i := keep; i < len(entries); i++ {
		if err := fileutil.Remove(entries[i].Path); err != nil {
			s.logger.Warn("failed to remove backup", "name", entries[i].Name, "error", err)
			continue
		}
		s.logger.Debug("removed backup", "name", entries[i].Name)
		cleaned++
	}

	return &CleanupResult{
		Cleaned: cleaned,
		Kept:    len(entries) - cleaned,
	}, nil
}

// GetStats aggregates the inventory in a single pass.
func (s *ListService) GetStats() (*Stats, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Count: len(entries),
		Types: map[EntryType]int{
			EntryTypeDirectory:  0,
			EntryTypeCompressed: 0,
		},
	}

	for i, entry := range entries {
		stats.TotalSize += entry.Size
		stats.Types[entry.Type]++

		// Entries are sorted newest first.
		if i == 0 {
			stats.Newest = entry.Modified
		}
		stats.Oldest = entry.Modified
	}

	if stats.Count > 0 {
		stats.AverageSize = stats.TotalSize / int64(stats.Count)
	}
	stats.TotalSizeHuman = humanize.Bytes(uint64(stats.TotalSize))

	return stats, nil
}

// readMetadata loads backup-metadata.json from a backup directory.
// Absence or corruption yields nil, never an error.
func readMetadata(dir string, logger *slog.Logger) *Metadata {
	path := filepath.Join(dir, MetadataFilename)
	if !fileutil.Exists(path) {
		return nil
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		logger.Warn("cannot read backup metadata", "path", path, "error", err)
		return nil
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		logger.Warn("corrupt backup metadata", "path", path, "error", err)
		return nil
	}
	return &meta
}

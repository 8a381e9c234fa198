package backup

import (
	"time"

	"github.com/claudectl/claudectl/internal/errors"
)

// MetadataFilename is the metadata document written inside each backup directory.
const MetadataFilename = "backup-metadata.json"

// ArchiveSuffix marks compressed-form backups in the backup root.
const ArchiveSuffix = ".tar.gz"

// DefaultRetentionCount is the default number of backups Cleanup retains.
const DefaultRetentionCount = 10

// Component names used in the metadata components map.
const (
	ComponentSettings = "settings"
	ComponentCommands = "commands"
	ComponentHooks    = "hooks"
)

// Entry types returned by the list service.
type EntryType string

const (
	// EntryTypeDirectory is an uncompressed directory snapshot.
	EntryTypeDirectory EntryType = "directory"

	// EntryTypeCompressed is a tar.gz archive in the backup root.
	EntryTypeCompressed EntryType = "compressed"
)

// Sentinel errors for backup operations.
var (
	// ErrDuplicateBackup indicates a backup with the requested name already exists.
	ErrDuplicateBackup = errors.New("backup already exists")

	// ErrBackupNotFound indicates a named backup could not be resolved.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrScanFailed indicates the backup root exists but could not be enumerated.
	ErrScanFailed = errors.New("scanning backup root failed")
)

// Metadata is the write-once record persisted as backup-metadata.json inside
// each backup directory. Once written it is never mutated; listing and restore
// tolerate its absence or corruption.
type Metadata struct {
	// Name is the backup identifier.
	Name string `json:"name"`

	// Timestamp is when the backup was created.
	Timestamp time.Time `json:"timestamp"`

	// Components flags each component that captured at least one file.
	// Components with zero captured files are omitted entirely.
	Components map[string]bool `json:"components"`

	// TotalFiles is the number of individual files captured.
	TotalFiles int `json:"totalFiles"`

	// TotalSize is the byte sum across all captured files.
	TotalSize int64 `json:"totalSize"`

	// ClaudeVersion is the detected Claude CLI version, or "unknown".
	ClaudeVersion string `json:"claudeVersion"`

	// System records the environment that created the backup. Diagnostic
	// only; never consulted by restore.
	System SystemInfo `json:"system"`
}

// SystemInfo describes the platform that created a backup.
type SystemInfo struct {
	Platform string `json:"platform"`
	Arch     string `json:"arch"`
	Runtime  string `json:"runtime"`
}

// Record describes a backup produced by Service.Create.
type Record struct {
	// Name is the backup identifier (caller-supplied or timestamp-derived).
	Name string

	// Path is the absolute path to the backup directory.
	Path string

	// Components maps component name to presence; a component appears only
	// if at least one of its files was captured.
	Components map[string]bool

	// TotalFiles counts individual files captured across all components.
	TotalFiles int

	// TotalSize is the byte sum across all captured files.
	TotalSize int64

	// Metadata is the document that was persisted alongside the files.
	Metadata *Metadata
}

// InventoryEntry describes one backup as seen by the list service.
// It is computed on every call and never persisted.
type InventoryEntry struct {
	Name     string    `json:"name"`
	Type     EntryType `json:"type"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Path     string    `json:"path"`

	// Metadata is parsed from backup-metadata.json for directory entries.
	// Nil when the file is absent or unparseable, and for compressed entries.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Details augments an inventory entry with live filesystem checks.
type Details struct {
	InventoryEntry

	// Exists is a live existence check of the entry path.
	Exists bool `json:"exists"`

	// Readable is a live readability check of the entry path.
	Readable bool `json:"readable"`

	// Components surfaces the metadata components map when available.
	Components map[string]bool `json:"components,omitempty"`
}

// CleanupResult reports the outcome of a retention pass.
type CleanupResult struct {
	// Cleaned is the number of backups actually removed.
	Cleaned int `json:"cleaned"`

	// Kept is the number of backups remaining, including any whose
	// removal failed.
	Kept int `json:"kept"`
}

// Stats aggregates the backup inventory in a single pass.
type Stats struct {
	Count          int               `json:"count"`
	TotalSize      int64             `json:"totalSize"`
	TotalSizeHuman string            `json:"totalSizeHuman"`
	AverageSize    int64             `json:"averageSize"`
	Types          map[EntryType]int `json:"types"`
	Oldest         time.Time         `json:"oldest"`
	Newest         time.Time         `json:"newest"`
}

// ComponentResult reports one restore step.
type ComponentResult struct {
	// Restored is true when the component existed in the backup and the
	// copy phase ran.
	Restored bool `json:"restored"`

	// Reason explains a skipped or failed step.
	Reason string `json:"reason,omitempty"`

	// Count is the number of files successfully restored for this component.
	Count int `json:"count"`
}

// RestoreSteps groups the per-component restore outcomes.
type RestoreSteps struct {
	Settings ComponentResult `json:"settings"`
	Commands ComponentResult `json:"commands"`
	Hooks    ComponentResult `json:"hooks"`
}

// RestoreResult is returned by RestoreService.Restore.
type RestoreResult struct {
	BackupName    string       `json:"backupName"`
	BackupPath    string       `json:"backupPath"`
	RestoredCount int          `json:"restoredCount"`
	Results       RestoreSteps `json:"results"`
	Metadata      *Metadata    `json:"metadata,omitempty"`
}

// componentCaptured reports whether a component counts as present in a
// backup: presence is inferred from the capture succeeding for at least
// one file, never from the component merely existing on disk.
func componentCaptured(filesCopied int) bool {
	return filesCopied > 0
}

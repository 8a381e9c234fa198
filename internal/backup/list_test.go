package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/claudectl/claudectl/internal/errors"
	"github.com/claudectl/claudectl/internal/logging"
	"github.com/claudectl/claudectl/internal/paths"
)

// makeBackupDir creates a bare backup directory with the given mtime,
// optionally containing raw metadata bytes.
func makeBackupDir(t *testing.T, cfg *paths.Config, name string, mtime time.Time, metadata []byte) string {
	t.Helper()
	dir := filepath.Join(cfg.BackupsDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if metadata != nil {
		if err := os.WriteFile(filepath.Join(dir, MetadataFilename), metadata, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(dir, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestList_Empty(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	// Backup root does not exist yet
	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() = %d entries, want 0", len(entries))
	}
}

func TestList_Ordering(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	base := time.Now().Add(-time.Hour)
	makeBackupDir(t, cfg, "oldest", base, nil)
	makeBackupDir(t, cfg, "newest", base.Add(30*time.Minute), nil)
	makeBackupDir(t, cfg, "middle", base.Add(15*time.Minute), nil)

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() = %d entries, want 3", len(entries))
	}

	want := []string{"newest", "middle", "oldest"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}

	// Listing does not mutate anything; a second call agrees
	again, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	for i := range entries {
		if entries[i].Name != again[i].Name || entries[i].Size != again[i].Size {
			t.Errorf("second List() disagrees at %d: %+v vs %+v", i, entries[i], again[i])
		}
	}
}

func TestList_MixedEntries(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	now := time.Now()
	makeBackupDir(t, cfg, "plain", now, nil)
	makeBackupDir(t, cfg, ".hidden", now, nil)

	// A compressed backup and a loose unrelated file
	archive := filepath.Join(cfg.BackupsDir(), "old-snap.tar.gz")
	if err := os.WriteFile(archive, []byte("gzipped bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.BackupsDir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() = %d entries, want 2 (hidden dirs and loose files excluded)", len(entries))
	}

	byName := map[string]InventoryEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	dir, ok := byName["plain"]
	if !ok || dir.Type != EntryTypeDirectory {
		t.Errorf("plain = %+v, want directory entry", dir)
	}
	comp, ok := byName["old-snap"]
	if !ok || comp.Type != EntryTypeCompressed {
		t.Fatalf("old-snap = %+v, want compressed entry with suffix stripped", comp)
	}
	if comp.Size != int64(len("gzipped bytes")) {
		t.Errorf("compressed Size = %d, want raw file size", comp.Size)
	}
}

func TestList_MalformedMetadata(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	makeBackupDir(t, cfg, "broken", time.Now(), []byte("{not json"))

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List() = %d entries, want 1", len(entries))
	}
	if entries[0].Metadata != nil {
		t.Error("malformed metadata should yield a nil Metadata, not an error")
	}
}

func TestList_UnreadableRoot(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	root := cfg.BackupsDir()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(root, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(root, 0o755) })

	// A root that exists but cannot be enumerated is the one fatal case
	_, err := svc.List()
	if !errors.Is(err, ErrScanFailed) {
		t.Errorf("List() error = %v, want ErrScanFailed", err)
	}
}

func TestFind(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	makeBackupDir(t, cfg, "present", time.Now(), nil)

	entry, err := svc.Find("present")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if entry == nil || entry.Name != "present" {
		t.Errorf("Find(present) = %+v", entry)
	}

	entry, err = svc.Find("absent")
	if err != nil {
		t.Fatalf("Find(absent) error = %v", err)
	}
	if entry != nil {
		t.Errorf("Find(absent) = %+v, want nil", entry)
	}
}

func TestDetails(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	meta := []byte(`{"name":"full","components":{"settings":true},"totalFiles":1,"totalSize":2}`)
	makeBackupDir(t, cfg, "full", time.Now(), meta)

	details, err := svc.Details("full")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if !details.Exists || !details.Readable {
		t.Errorf("Exists/Readable = %v/%v, want true/true", details.Exists, details.Readable)
	}
	if !details.Components[ComponentSettings] {
		t.Errorf("Components = %v, want settings captured", details.Components)
	}

	if _, err := svc.Details("nope"); !errors.Is(err, ErrBackupNotFound) {
		t.Errorf("Details(nope) error = %v, want ErrBackupNotFound", err)
	}
}

func TestCleanup(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		makeBackupDir(t, cfg, name, base.Add(time.Duration(i)*time.Minute), nil)
	}

	result, err := svc.Cleanup(2)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if result.Cleaned != 3 || result.Kept != 2 {
		t.Errorf("Cleanup() = %+v, want Cleaned=3 Kept=2", result)
	}

	// The two newest survive
	entries, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name != "e" || entries[1].Name != "d" {
		t.Errorf("surviving entries = %+v, want [e d]", entries)
	}
}

func TestCleanup_KeepExceedsCount(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	makeBackupDir(t, cfg, "only", time.Now(), nil)

	result, err := svc.Cleanup(10)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if result.Cleaned != 0 || result.Kept != 1 {
		t.Errorf("Cleanup() = %+v, want Cleaned=0 Kept=1", result)
	}
}

func TestCleanup_FailedRemovalCountsAsKept(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	base := time.Now().Add(-time.Hour)
	makeBackupDir(t, cfg, "keep", base.Add(30*time.Minute), nil)
	stuck := makeBackupDir(t, cfg, "stuck", base.Add(15*time.Minute), nil)
	makeBackupDir(t, cfg, "gone", base, nil)

	// A read-only directory with a child cannot be emptied, so its
	// removal fails while the pass continues
	if err := os.WriteFile(filepath.Join(stuck, "payload"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(stuck, 0o500); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(stuck, base.Add(15*time.Minute), base.Add(15*time.Minute)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(stuck, 0o755) })

	result, err := svc.Cleanup(1)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if result.Cleaned != 1 {
		t.Errorf("Cleaned = %d, want 1 (only the removable backup)", result.Cleaned)
	}
	if result.Kept != 2 {
		t.Errorf("Kept = %d, want 2 (the failed removal counts as kept)", result.Kept)
	}

	if _, statErr := os.Stat(stuck); statErr != nil {
		t.Error("unremovable backup should still exist")
	}
}

func TestCleanup_NegativeKeep(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	if _, err := svc.Cleanup(-1); err == nil {
		t.Error("Cleanup(-1) should fail")
	}
}

func TestGetStats(t *testing.T) {
	cfg := testPaths(t)
	svc := NewListService(cfg, WithListLogger(logging.ForTest(t)))

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Count != 0 || stats.TotalSize != 0 || stats.AverageSize != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.Types[EntryTypeDirectory] != 0 || stats.Types[EntryTypeCompressed] != 0 {
		t.Errorf("Types = %v, want both keys present at zero", stats.Types)
	}

	base := time.Now().Add(-time.Hour)
	old := makeBackupDir(t, cfg, "old", base, nil)
	if err := os.WriteFile(filepath.Join(old, "payload"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(old, base, base); err != nil {
		t.Fatal(err)
	}
	makeBackupDir(t, cfg, "new", base.Add(30*time.Minute), nil)

	stats, err = svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if stats.Types[EntryTypeDirectory] != 2 {
		t.Errorf("Types = %v, want 2 directory backups", stats.Types)
	}
	if stats.TotalSize != 100 || stats.AverageSize != 50 {
		t.Errorf("TotalSize/AverageSize = %d/%d, want 100/50", stats.TotalSize, stats.AverageSize)
	}
	if !stats.Newest.After(stats.Oldest) {
		t.Errorf("Newest %v should be after Oldest %v", stats.Newest, stats.Oldest)
	}
	if stats.TotalSizeHuman == "" {
		t.Error("TotalSizeHuman should be populated")
	}
}

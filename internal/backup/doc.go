// Package backup provides snapshot, inventory, and restore capabilities for a
// Claude configuration tree.
//
// # Backup Layout
//
// Each backup is a directory under the backup root containing the captured
// components and a metadata document written last:
//
//	<claudeDir>/backups/
//	├── <name>/
//	│   ├── settings.json
//	│   ├── commands/*.md
//	│   ├── hooks/*
//	│   └── backup-metadata.json
//	└── <name>.tar.gz
//
// Backups are immutable once written: nothing in this package mutates a
// backup's contents or its metadata after creation. The compressed form is
// produced by [Service.Archive] and consumed transparently by
// [RestoreService.Restore], which extracts it to a temporary directory first.
//
// # Creating Backups
//
//	cfg, _ := paths.New(claudeDir)
//	svc := backup.NewService(cfg)
//	record, err := svc.Create("")          // timestamp-derived name
//	record, err = svc.Create("pre-change") // explicit name
//
// Creation is best-effort per file: individual copy failures are logged as
// warnings and reflected truthfully in the record's component flags and
// counts, but never abort the call. A name collision fails with
// [ErrDuplicateBackup] before anything is written.
//
// # Inventory
//
//	ls := backup.NewListService(cfg)
//	entries, err := ls.List()      // newest first
//	details, err := ls.Details(n)  // live existence/readability checks
//	stats, err := ls.GetStats()    // single-pass aggregation
//	res, err := ls.Cleanup(10)     // keep the 10 newest
//
// Listing tolerates missing or corrupt metadata (the entry carries a nil
// Metadata) and a missing backup root (empty inventory). Only a root that
// exists but cannot be enumerated fails, with [ErrScanFailed].
//
// # Restoring
//
//	rs := backup.NewRestoreService(cfg)
//	result, err := rs.Restore("pre-change")
//
// The three restore steps (settings, commands, hooks) run independently and
// never roll back. Restoring commands is a full replace: existing markdown
// files in the live commands directory are cleared whenever the backup
// carries a commands subdirectory. Restored hooks are normalized to 0755 for
// *.sh files and 0644 otherwise.
//
// # Concurrency
//
// All services are synchronous and perform no internal locking. Two processes
// operating on the same backup root concurrently may interleave partial
// writes; callers are expected to serialize access (one CLI invocation at a
// time).
package backup

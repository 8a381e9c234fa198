// Package paths resolves filesystem locations for the claudectl CLI.
//
// The central type is [Config], which is rooted at a Claude configuration
// directory (by default ~/.claude) and exposes the fixed layout used by
// the rest of the tool:
//
//	<claudeDir>/
//	  settings.json
//	  commands/*.md
//	  hooks/*
//	  backups/
//
// A Config is constructed explicitly and injected into services rather than
// resolved through a process-global; tests construct one over t.TempDir().
//
// The package also provides the XDG base directories used for claudectl's
// own configuration file, and small helpers shared across packages
// ([EnsureDir], [ResolveHome]).
package paths

package backup

import (
	"os/exec"
	"runtime"
	"strings"
)

// detectClaudeVersion asks the Claude CLI for its version. Best effort:
// any failure yields "unknown" and is never surfaced to the caller.
func detectClaudeVersion() string {
	path, err := exec.LookPath("claude")
	if err != nil {
		return "unknown"
	}

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return "unknown"
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return "unknown"
	}

	// Some CLI builds print "x.y.z (Claude Code)"; keep the first line only.
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = version[:idx]
	}
	return version
}

// currentSystem captures the environment creating a backup.
func currentSystem() SystemInfo {
	return SystemInfo{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		Runtime:  runtime.Version(),
	}
}

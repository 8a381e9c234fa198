package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if the writer is backed by a terminal.
// It supports os.File and any wrapper exposing an Fd() method.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SupportsColor returns true if the writer should receive ANSI color codes.
// Color is disabled when the writer is not a TTY, when NO_COLOR is set
// (https://no-color.org), or when TERM is "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}

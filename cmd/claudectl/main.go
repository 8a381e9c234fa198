// Package main is the entry point for the claudectl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/claudectl/claudectl/cmd/claudectl/commands"
	"github.com/claudectl/claudectl/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if suggestion := errors.SuggestionFor(err); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}

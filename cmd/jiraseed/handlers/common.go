package handlers

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isInteractiveTTY reports whether stdout is a terminal.
func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

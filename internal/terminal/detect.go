// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// isTerminalFn is a seam so tests can force either answer.
var isTerminalFn = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive
// terminals. This is the canonical check across the codebase.
func IsInteractive() bool {
	return isTerminalFn(int(os.Stdin.Fd())) && isTerminalFn(int(os.Stdout.Fd()))
}

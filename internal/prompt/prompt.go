// Package prompt holds the interactive confirmations the migrator asks
// before mutating a system. The Prompter interface keeps command logic
// testable; the terminal implementation is built on charmbracelet/huh.
package prompt

import "errors"

// ErrAborted is returned when the operator backs out of a prompt.
var ErrAborted = errors.New("aborted by user")

// Prompter asks the operator questions. Implementations leave the pointed-to
// value untouched on error.
type Prompter interface {
	// Confirm renders a yes/no question; value carries the default in and
	// the answer out.
	Confirm(title string, value *bool) error
	// Select renders a single-choice list.
	Select(title string, options []string, value *string) error
	// Input renders a free-text field; value carries the suggestion in.
	Input(title string, value *string) error
}

// AssumeDefaults answers every prompt with the value already present,
// backing the --yes flag and non-interactive runs.
type AssumeDefaults struct{}

func (AssumeDefaults) Confirm(string, *bool) error { return nil }

func (AssumeDefaults) Select(title string, options []string, value *string) error {
	if *value == "" && len(options) > 0 {
		*value = options[0]
	}
	return nil
}

func (AssumeDefaults) Input(string, *string) error { return nil }

package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/openclaw/openclaw-migrate/internal/messages"
	"github.com/openclaw/openclaw-migrate/internal/terminal"
)

// HuhPrompter implements Prompter on charmbracelet/huh forms.
type HuhPrompter struct {
	isTerminal func() bool
}

var runFormFn = func(form *huh.Form) error { return form.Run() }

// NewHuhPrompter creates a prompter using the default terminal check.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{isTerminal: terminal.IsInteractive}
}

func (p *HuhPrompter) ensureInteractive() error {
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.PromptRequiresTerminal)
}

// promptKeyMap maps both Esc and Ctrl+C to form abort. A migration prompt
// has no back navigation; any abort means stop before touching the system.
func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// runForm validates terminal availability and runs the form. Any abort is
// mapped to ErrAborted.
func (p *HuhPrompter) runForm(form *huh.Form) error {
	if err := p.ensureInteractive(); err != nil {
		return err
	}
	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(func(_ tea.Model, msg tea.Msg) tea.Msg {
			// Convert SIGINT to the graceful shutdown path so the renderer
			// clears the form output.
			if _, ok := msg.(tea.InterruptMsg); ok {
				return tea.QuitMsg{}
			}
			return msg
		}),
	)
	if err := runFormFn(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// Confirm renders a yes/no prompt.
func (p *HuhPrompter) Confirm(title string, value *bool) error {
	return p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	))
}

// Select renders a single-choice prompt.
func (p *HuhPrompter) Select(title string, options []string, value *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	return p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	))
}

// Input renders a plain text input prompt.
func (p *HuhPrompter) Input(title string, value *string) error {
	return p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	))
}

package prompt

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

func TestAssumeDefaultsConfirmKeepsValue(t *testing.T) {
	var p AssumeDefaults

	yes := true
	require.NoError(t, p.Confirm("proceed?", &yes))
	assert.True(t, yes)

	no := false
	require.NoError(t, p.Confirm("proceed?", &no))
	assert.False(t, no)
}

func TestAssumeDefaultsSelectPicksFirstWhenEmpty(t *testing.T) {
	var p AssumeDefaults

	value := ""
	require.NoError(t, p.Select("account", []string{"clawdbot", "moltbot"}, &value))
	assert.Equal(t, "clawdbot", value)

	value = "moltbot"
	require.NoError(t, p.Select("account", []string{"clawdbot", "moltbot"}, &value))
	assert.Equal(t, "moltbot", value, "a preset value is kept")

	value = ""
	require.NoError(t, p.Select("account", nil, &value))
	assert.Empty(t, value)
}

func TestAssumeDefaultsInputKeepsSuggestion(t *testing.T) {
	var p AssumeDefaults
	value := "openclaw"
	require.NoError(t, p.Input("new login", &value))
	assert.Equal(t, "openclaw", value)
}

func TestHuhPrompterRequiresTerminal(t *testing.T) {
	p := &HuhPrompter{isTerminal: func() bool { return false }}

	yes := false
	err := p.Confirm("proceed?", &yes)
	require.Error(t, err)
	assert.Equal(t, messages.PromptRequiresTerminal, err.Error())
	assert.False(t, yes, "value untouched on error")
}

func TestHuhPrompterMapsUserAbort(t *testing.T) {
	restore := runFormFn
	runFormFn = func(*huh.Form) error { return huh.ErrUserAborted }
	defer func() { runFormFn = restore }()

	p := &HuhPrompter{isTerminal: func() bool { return true }}
	value := ""
	err := p.Select("account", []string{"clawdbot"}, &value)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestHuhPrompterPassesFormThrough(t *testing.T) {
	restore := runFormFn
	var got *huh.Form
	runFormFn = func(f *huh.Form) error { got = f; return nil }
	defer func() { runFormFn = restore }()

	p := &HuhPrompter{isTerminal: func() bool { return true }}
	value := "suggestion"
	require.NoError(t, p.Input("new login", &value))
	assert.NotNil(t, got)
	assert.Equal(t, "suggestion", value)
}

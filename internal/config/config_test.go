package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGracePeriodSeconds, cfg.Pipeline.GracePeriodSeconds)
	assert.Empty(t, cfg.Aliases.Extra)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.toml")
	content := `
[aliases]
extra = ["pawbot"]

[pipeline]
grace_period_seconds = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pawbot"}, cfg.Aliases.Extra)
	assert.Equal(t, 3, cfg.Pipeline.GracePeriodSeconds)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[pipeline]\ntypo_key = 1\n"), "test.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestParseRejectsNegativeGrace(t *testing.T) {
	_, err := Parse([]byte("[pipeline]\ngrace_period_seconds = -1\n"), "test.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigValidation)
}

func TestParseRejectsBadAlias(t *testing.T) {
	for _, alias := range []string{`""`, `"bad name"`, `"bad/name"`} {
		_, err := Parse([]byte("[aliases]\nextra = ["+alias+"]\n"), "test.toml")
		assert.ErrorIs(t, err, ErrConfigValidation, "alias %s", alias)
	}
}

func TestParseLenientIgnoresValidation(t *testing.T) {
	cfg, err := ParseLenient([]byte("[pipeline]\ngrace_period_seconds = -1\n"), "test.toml")
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Pipeline.GracePeriodSeconds)
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[aliases]\nextra = [\"pawbot\"]\n"), "test.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultGracePeriodSeconds, cfg.Pipeline.GracePeriodSeconds)
}

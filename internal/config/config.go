// Package config loads the migration tool's own settings and reads the agent's
// persisted configuration artifacts (openclaw.json, .env).
package config

import (
	"fmt"
	"strings"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// DefaultGracePeriodSeconds bounds how long StopServices waits between the
// graceful signal and the forced kill.
const DefaultGracePeriodSeconds = 10

// Config holds operator-tunable migration settings. All fields have working
// defaults; the file is optional.
type Config struct {
	Aliases   AliasConfig    `toml:"aliases"`
	Workspace WorkspaceKnobs `toml:"workspace"`
	Pipeline  PipelineKnobs  `toml:"pipeline"`
}

// AliasConfig extends the built-in legacy alias list.
type AliasConfig struct {
	// Extra legacy project/user names to fold in, in addition to the
	// built-in ones.
	Extra []string `toml:"extra"`
}

// WorkspaceKnobs extends workspace detection.
type WorkspaceKnobs struct {
	// ExtraMarkerFiles are additional file names that mark a workspace.
	ExtraMarkerFiles []string `toml:"extra_marker_files"`
	// ExtraDirs are additional home-relative conventional workspace
	// locations to probe.
	ExtraDirs []string `toml:"extra_dirs"`
}

// PipelineKnobs tunes pipeline behavior.
type PipelineKnobs struct {
	GracePeriodSeconds int `toml:"grace_period_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pipeline: PipelineKnobs{GracePeriodSeconds: DefaultGracePeriodSeconds},
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate(source string) error {
	if c.Pipeline.GracePeriodSeconds < 0 {
		return fmt.Errorf(messages.ConfigGraceNegativeFmt, source)
	}
	for _, alias := range c.Aliases.Extra {
		trimmed := strings.TrimSpace(alias)
		if trimmed == "" {
			return fmt.Errorf(messages.ConfigAliasEmptyFmt, source)
		}
		if strings.ContainsAny(trimmed, "/ \t") {
			return fmt.Errorf(messages.ConfigAliasInvalidFmt, trimmed, source)
		}
	}
	return nil
}

// applyDefaults fills zero values after decoding.
func (c *Config) applyDefaults() {
	if c.Pipeline.GracePeriodSeconds == 0 {
		c.Pipeline.GracePeriodSeconds = DefaultGracePeriodSeconds
	}
}

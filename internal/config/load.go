package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/openclaw/openclaw-migrate/internal/messages"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "/etc/openclaw/migrate.toml"

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax or
// filesystem errors. Callers use errors.Is to distinguish.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads the tool configuration from path. A missing file yields the
// built-in defaults; any other failure is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates TOML config data. source is used in errors.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidTOMLFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnknownKeysFmt, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ParseLenient decodes without validation. Returns an error only on TOML
// syntax errors, so read-only commands can work with a partially valid file.
func ParseLenient(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidTOMLFmt, source, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// decodeStrict re-decodes with unknown-field rejection. toml.Unmarshal
// silently drops keys it cannot place, which would hide operator typos.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

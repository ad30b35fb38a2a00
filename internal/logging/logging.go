// Package logging configures the process-wide structured logger: console
// output on stderr plus an append-only log file in the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const stateFileRel = "openclaw-migrate/migrate.log"

// Setup builds the root logger for the given verbosity: 0 warns, 1 informs,
// 2 debugs, anything higher traces. The log file keeps full debug output
// regardless of the console level so a failed run can be reconstructed.
func Setup(verbosity int) zerolog.Logger {
	level := zerolog.WarnLevel
	switch verbosity {
	case 0:
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	writers := []io.Writer{leveledWriter{w: console, min: level}}

	path, fileErr := logFilePath()
	if fileErr == nil {
		var file *os.File
		if file, fileErr = openLogFile(path); fileErr == nil {
			writers = append(writers, file)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(zerolog.TraceLevel).
		With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	if fileErr != nil {
		logger.Warn().Err(fileErr).Msg("file logging disabled")
	}
	logger.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("logger initialized")
	return logger
}

// Component returns logger with a component field for a subsystem.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// leveledWriter drops events below min so the console stays at the requested
// verbosity while the file writer keeps everything.
type leveledWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (lw leveledWriter) Write(p []byte) (int, error) {
	return lw.w.Write(p)
}

func (lw leveledWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < lw.min {
		return len(p), nil
	}
	return lw.w.Write(p)
}

func logFilePath() (string, error) {
	return xdg.StateFile(stateFileRel)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

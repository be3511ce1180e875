// Package logger provides the application's structured logger backed by
// zerolog. The UI owns the terminal, so logs go to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// New creates a logger writing JSON lines to the given file path. An empty
// path resolves to ~/.config/tasktrack/tasktrack.log. The returned closer
// releases the underlying file.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("resolving home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "tasktrack", "tasktrack.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	l := zerolog.New(f).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return l, f, nil
}

// parseLevel converts a string to a zerolog.Level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

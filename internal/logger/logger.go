// Package logger builds the zerolog logger shared by every arcade component.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/config"
)

// New creates a logger from the logging config. Output goes to w, or to the
// configured file when w is nil and a file is set, or to stderr otherwise.
// The returned closer releases the log file, if one was opened.
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var closer io.Closer = nopCloser{}
	if w == nil {
		w = os.Stderr
		if cfg.File != "" {
			path, err := config.ExpandPath(cfg.File)
			if err != nil {
				return zerolog.Nop(), closer, err
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	if cfg.Format == "pretty" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	l := zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "arcade").
		Logger()

	return l, closer, nil
}

// ParseLevel converts a config level string to a zerolog level. Unknown
// values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
)

// Rotation limits for the log file sink
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 30
)

// NewLogger creates a slog.Logger writing text records to w at levelStr.
// It does not install the logger globally.
func NewLogger(levelStr string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(levelStr)}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to warn
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup installs the default logger described by cfg. Records go to stderr,
// or to a rotated file when cfg.File is set. The returned closer releases the
// file sink and is always non-nil.
func Setup(cfg config.LogConfig, stderr io.Writer) (io.Closer, error) {
	var w io.Writer = stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return closer, err
		}

		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		w = rotator
		closer = rotator
	}

	slog.SetDefault(NewLogger(cfg.Level, w))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

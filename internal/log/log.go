// Package log configures the application's structured logger.
// The terminal belongs to the TUI, so records go to a file.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/marquee/internal/config"
)

// Options adjusts the logger for one run
type Options struct {
	// Debug forces debug level and records the source location
	Debug bool
	// Version tags every record so logs from upgrades can be told apart
	Version string
}

// SetupLogger opens the log file from cfg and returns a JSON logger.
// Every record carries the version and pid, since concurrent runs may
// share the file.
func SetupLogger(cfg *config.LoggingConfig, opts Options) (*slog.Logger, error) {
	// Expand ~ in path
	logPath := cfg.File
	if strings.HasPrefix(logPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		logPath = filepath.Join(home, logPath[1:])
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newLogger(logFile, cfg.Level, opts), nil
}

func newLogger(w io.Writer, level string, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if opts.Debug {
		handlerOpts.Level = slog.LevelDebug
		handlerOpts.AddSource = true
	}

	logger := slog.New(slog.NewJSONHandler(w, handlerOpts)).With("pid", os.Getpid())
	if opts.Version != "" {
		logger = logger.With("version", opts.Version)
	}
	return logger
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Package logging provides the process-wide structured logger.
//
// Call Init once at startup; packages retrieve the logger with Logger.
// Before Init a warn-level stderr logger is used, so tests stay quiet.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, slog.LevelWarn)
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init replaces the global logger with one writing to w at the given level
func Init(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, level)
}

// Level maps the --verbose flag to a log level
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// Logger returns the global logger
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WithQuestion returns a logger tagged with the question being answered
func WithQuestion(name string) *slog.Logger {
	return Logger().With("question", name)
}

// Package logging builds the leveled diagnostic logger shared by the
// command line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "MOT_LOG_LEVEL"

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// FromEnv returns a stderr logger at the level named by MOT_LOG_LEVEL.
// verbose forces debug. An unknown level falls back to info with a warning.
func FromEnv(verbose bool) *slog.Logger {
	level, err := ParseLevel(os.Getenv(EnvLevel))
	if verbose {
		level = slog.LevelDebug
	}
	log := New(os.Stderr, level)
	if err != nil {
		log.Warn("ignoring "+EnvLevel, "err", err)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

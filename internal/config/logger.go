package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logging environment variables.
const (
	EnvLogFile  = "INVADERS_LOG_FILE"
	EnvLogLevel = "INVADERS_LOG_LEVEL"
)

// NewLogger builds a structured logger writing to w at the level named by
// INVADERS_LOG_LEVEL (info when unset).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// OpenLogFile opens the file named by INVADERS_LOG_FILE for appending.
// With the variable unset it returns io.Discard and a no-op close, since
// the terminal itself is the game screen.
func OpenLogFile() (io.Writer, func() error, error) {
	path := GetEnv(EnvLogFile, "")
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

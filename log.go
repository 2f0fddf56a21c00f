package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogLevel = "warn"

// newLogger returns a JSON logger writing to w. An empty or unknown level
// falls back to warn.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl := zerolog.WarnLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("component", "k3s-ansible-lint").
		Logger()
}

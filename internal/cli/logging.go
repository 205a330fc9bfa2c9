package cli

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/ebookstore/internal/config"
)

// SessionIDGenerator produces the id stamped on every log record of one run.
type SessionIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered session ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// newLogger builds the run's logger. Warnings and errors only, unless
// verbose, so diagnostics don't interleave with the interactive menu.
func newLogger(w io.Writer, cfg config.Config, session string) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler).With("session", session)
}

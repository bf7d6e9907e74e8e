// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zerolog logger used for diagnostics. Progress
// lines meant for the operator are written separately, to the command's
// output writer.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/pkg/types"
)

// New returns a logger for cfg writing to out (stderr when nil). Format
// "json" emits one JSON object per line; anything else uses the console
// writer, colored only when out is a terminal.
func New(cfg types.LogConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "medmaps").
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// ParseLevel maps debug, info, warn and error to zerolog levels. Unknown
// or empty values mean info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// NewRunID returns a sortable identifier for one batch run.
func NewRunID() string {
	return ulid.Make().String()
}

// WithRun returns a child logger tagged with a run id.
func WithRun(l zerolog.Logger, runID string) zerolog.Logger {
	return l.With().Str("run_id", runID).Logger()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(types.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	ingest := Component(WithRun(log, "run-1"), "ingest")
	ingest.Warn().Str("path", "a.smmx").Msg("skipped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "medmaps", rec["service"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "ingest", rec["component"])
	assert.Equal(t, "a.smmx", rec["path"])
	assert.Equal(t, "skipped", rec["message"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(types.LogConfig{}, &buf)
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := ulid.Parse(a)
	assert.NoError(t, err)
}

func TestNewConsoleWithoutTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(types.LogConfig{}, &buf)
	log.Warn().Msg("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/narrator/internal/env"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithConsole(&buf))

	log.Info("Speech synthesized", "clip", "audio_1.mp3")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Speech synthesized", rec["msg"])
	assert.Equal(t, "audio_1.mp3", rec["clip"])
}

func TestNew_DevelopmentRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithConsole(&buf), WithLevel(slog.LevelWarn))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_FileSink(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "narrator.log")

	log := New(env.Development,
		WithConsole(&buf),
		WithLogToFile(true),
		WithLogFile(path),
	)
	log.With("component", "test").Info("Written twice")

	assert.Contains(t, buf.String(), "Written twice")
	assert.Contains(t, buf.String(), "component")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Written twice"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNew_FileSinkRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "narrator.log")

	log := New(env.Production,
		WithConsole(&buf),
		WithLogToFile(true),
		WithLogFile(path),
		WithLevel(slog.LevelWarn),
	)
	log.Info("Dropped")
	log.Warn("Kept")

	assert.NotContains(t, buf.String(), "Dropped")
	assert.Contains(t, buf.String(), "Kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Dropped")
	assert.Contains(t, string(data), "Kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

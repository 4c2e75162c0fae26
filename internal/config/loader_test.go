package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/narrator/internal/envvar"
)

const validConfig = `
version: "1"
server:
  http_port: 8181
audio:
  dir: clips
speech:
  provider: piper
  max_concurrency: 2
  timeout: 45s
  parameters:
    speaker_id: 3
    length_scale: 1.2
  piper:
    bin_path: /usr/local/bin/piper
    source:
      huggingface:
        repo: rhasspy/piper-voices
        include: ["en/en_US/lessac/medium/*"]
ledger:
  path: narrator.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, validConfig), "")
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultGRPCPort(), cfg.Server.GRPCPort)
	assert.Equal(t, "clips", cfg.Audio.Dir)
	assert.Equal(t, "piper", cfg.Speech.Provider)
	assert.Equal(t, 2, cfg.Speech.MaxConcurrency)
	assert.Equal(t, 45*time.Second, cfg.Speech.Timeout)
	assert.Equal(t, 3, cfg.Speech.Parameters["speaker_id"])
	assert.Equal(t, "espeak-ng", cfg.Speech.Espeak.BinPath)
	assert.Equal(t, "narrator.db", cfg.Ledger.Path)

	src, err := cfg.Speech.Piper.GetSource()
	require.NoError(t, err)
	assert.Equal(t, SourceTypeHuggingFace, src.Type())
}

func TestLoadAndValidate_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown provider": "version: \"1\"\nspeech:\n  provider: sapi5\n",
		"missing speech":   "version: \"1\"\n",
		"bad timeout":      "version: \"1\"\nspeech:\n  provider: espeak\n  timeout: soon\n",
		"unknown key":      "version: \"1\"\nspeech:\n  provider: espeak\nextra: true\n",
		"bad yaml":         "version: [",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, content), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "audio", cfg.Audio.Dir)
	assert.Equal(t, "espeak", cfg.Speech.Provider)
	assert.Equal(t, 1, cfg.Speech.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Speech.Timeout)
	assert.Empty(t, cfg.Ledger.Path)

	_, err := cfg.Speech.Piper.GetSource()
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestResolveAudioDir(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "audio", ResolveAudioDir(cfg))

	cfg.Audio.Dir = "out"
	assert.Equal(t, "out", ResolveAudioDir(cfg))

	t.Setenv(envvar.NarratorAudioDir, "/srv/audio")
	assert.Equal(t, "/srv/audio", ResolveAudioDir(cfg))
}

func TestDefaultHTTPPort_FromEnv(t *testing.T) {
	t.Setenv(envvar.NarratorServerHTTPPort, "9999")
	assert.Equal(t, 9999, DefaultHTTPPort())

	t.Setenv(envvar.NarratorServerHTTPPort, "not-a-port")
	assert.Equal(t, 8080, DefaultHTTPPort())
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/ekisa-team/narrator/internal/envvar"
	"github.com/ekisa-team/narrator/internal/xfs"
)

const (
	defaultHTTPPort       = 8080
	defaultGRPCPort       = 9090
	defaultAudioDir       = "audio"
	defaultProvider       = "espeak"
	defaultMaxConcurrency = 1
	defaultTimeout        = 30 * time.Second
)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{Version: "1"}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills every zero value with its default.
func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = DefaultHTTPPort()
	}
	if cfg.Server.GRPCPort == 0 {
		cfg.Server.GRPCPort = DefaultGRPCPort()
	}
	if cfg.Audio.Dir == "" {
		cfg.Audio.Dir = defaultAudioDir
	}
	if cfg.Speech.Provider == "" {
		cfg.Speech.Provider = defaultProvider
	}
	if cfg.Speech.MaxConcurrency <= 0 {
		cfg.Speech.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.Speech.Timeout <= 0 {
		cfg.Speech.Timeout = defaultTimeout
	}
	if cfg.Speech.Parameters == nil {
		cfg.Speech.Parameters = map[string]any{"voice": "en"}
	}
	if cfg.Speech.Espeak.BinPath == "" {
		cfg.Speech.Espeak.BinPath = "espeak-ng"
	}
	if cfg.Speech.Piper.BinPath == "" {
		cfg.Speech.Piper.BinPath = "piper"
	}
}

// DefaultHTTPPort returns the HTTP port from NARRATOR_SERVER_HTTP_PORT or 8080.
func DefaultHTTPPort() int {
	return portFromEnv(envvar.NarratorServerHTTPPort, defaultHTTPPort)
}

// DefaultGRPCPort returns the gRPC port from NARRATOR_SERVER_GRPC_PORT or 9090.
func DefaultGRPCPort() int {
	return portFromEnv(envvar.NarratorServerGRPCPort, defaultGRPCPort)
}

func portFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
	}
	return def
}

// ResolveAudioDir returns the directory audio clips are written to.
// Precedence:
// 1. NARRATOR_AUDIO_DIR environment variable.
// 2. Audio.Dir field in the config.
// 3. "audio" relative to the working directory.
func ResolveAudioDir(cfg *Config) string {
	if p := os.Getenv(envvar.NarratorAudioDir); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Audio.Dir != "" {
		return xfs.ExpandTilde(cfg.Audio.Dir)
	}
	return defaultAudioDir
}

// ResolveModelsPath returns the path downloaded voice models are stored in.
// Precedence:
// 1. NARRATOR_MODELS_PATH environment variable.
// 2. Storage.ModelsDir field in the config.
// 3. Default models path.
func ResolveModelsPath(cfg *Config) string {
	if p := os.Getenv(envvar.NarratorModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(DefaultModelsPath())
}

// DefaultConfigPath returns the default path for the narrator config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "narrator", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "narrator")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "narrator")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "narrator")
		}
		return filepath.Join(home, ".config", "narrator")
	}
}

// DefaultModelsPath returns the default path for the narrator voice models directory.
func DefaultModelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "narrator", "voices")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "narrator", "voices")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "narrator", "voices")
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "narrator", "voices")
		}
		return filepath.Join(home, ".cache", "narrator", "voices")
	}
}

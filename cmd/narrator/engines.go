package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ekisa-team/narrator/internal/config"
	"github.com/ekisa-team/narrator/internal/config/source"
	"github.com/ekisa-team/narrator/internal/speech"
	"github.com/ekisa-team/narrator/internal/speech/espeak"
	"github.com/ekisa-team/narrator/internal/speech/piper"
)

// buildEngines registers every engine whose binary is available. Only the
// configured provider is mandatory; the others are kept for hot reload.
func buildEngines(ctx context.Context, cfg *config.Config) (*speech.Registry, error) {
	sc := cfg.Speech
	registry := speech.NewRegistry()

	var ffmpeg *speech.Executor
	if sc.FFmpeg.BinPath != "" {
		var err error
		if ffmpeg, err = speech.NewExecutor(sc.FFmpeg.BinPath, sc.Timeout); err != nil {
			return nil, fmt.Errorf("ffmpeg: %w", err)
		}
	}

	candidates := map[speech.Provider]func() (speech.Engine, error){
		espeak.Provider: func() (speech.Engine, error) {
			return espeak.New(sc.Espeak.BinPath, sc.Timeout)
		},
		piper.Provider: func() (speech.Engine, error) {
			model, err := source.ResolveVoice(ctx, sc.Piper, config.ResolveModelsPath(cfg))
			if err != nil {
				return nil, err
			}
			return piper.New(sc.Piper.BinPath, model, sc.Timeout)
		},
	}

	for provider, build := range candidates {
		engine, err := build()
		if err != nil {
			if string(provider) == sc.Provider {
				registry.Close()
				return nil, fmt.Errorf("configured speech provider %s is unavailable: %w", provider, err)
			}
			slog.Debug("Speech engine unavailable", "provider", provider, "error", err)
			continue
		}

		if ffmpeg != nil {
			engine = speech.NewTranscoder(engine, ffmpeg)
		}

		pooled, err := speech.NewPooledEngine(engine, sc.MaxConcurrency)
		if err != nil {
			registry.Close()
			return nil, err
		}

		if err := registry.Register(pooled); err != nil {
			registry.Close()
			return nil, err
		}

		slog.Info("Speech engine registered", "provider", provider, "max_concurrency", sc.MaxConcurrency, "transcode", ffmpeg != nil)
	}

	return registry, nil
}

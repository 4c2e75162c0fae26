package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ekisa-team/narrator/internal/audio"
	"github.com/ekisa-team/narrator/internal/config"
	"github.com/ekisa-team/narrator/internal/ledger"
	"github.com/ekisa-team/narrator/internal/speech"
)

// Recorder persists a record of every synthesized clip.
type Recorder interface {
	Record(ctx context.Context, e ledger.Entry) error
}

// SpeechOption configures the Speech service.
type SpeechOption func(*Speech)

// WithRecorder records every clip in r. Record failures are logged only.
func WithRecorder(r Recorder) SpeechOption {
	return func(s *Speech) { s.recorder = r }
}

// WithParameters sets the engine parameters passed with every request.
func WithParameters(p map[string]any) SpeechOption {
	return func(s *Speech) { s.parameters = maps.Clone(p) }
}

// Speech is a service abstraction for text-to-speech.
type Speech struct {
	engines    *speech.Registry
	store      *audio.FileStore
	recorder   Recorder
	mu         sync.RWMutex
	provider   speech.Provider
	parameters map[string]any
}

// NewSpeech creates a new Speech service synthesizing with provider.
func NewSpeech(engines *speech.Registry, store *audio.FileStore, provider speech.Provider, opts ...SpeechOption) *Speech {
	s := &Speech{
		engines:  engines,
		store:    store,
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the provider currently used for synthesis.
func (s *Speech) Provider() speech.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.provider
}

// Reconfigure switches the provider and parameters. The provider must
// already be registered; otherwise the current settings are kept.
func (s *Speech) Reconfigure(cfg config.SpeechConfig) error {
	p := speech.Provider(cfg.Provider)
	if _, ok := s.engines.Get(p); !ok {
		return fmt.Errorf("%w: %s", speech.ErrNotFound, p)
	}

	s.mu.Lock()
	s.provider = p
	s.parameters = maps.Clone(cfg.Parameters)
	s.mu.Unlock()

	slog.Info("Speech service reconfigured", "provider", p)
	return nil
}

// Speak synthesizes text into a new clip under the audio directory.
// The clip file is left on disk after the call.
func (s *Speech) Speak(ctx context.Context, text string) (*audio.Clip, error) {
	s.mu.RLock()
	provider, params := s.provider, s.parameters
	s.mu.RUnlock()

	engine, ok := s.engines.Get(provider)
	if !ok {
		return nil, fmt.Errorf("%w: %s", speech.ErrNotFound, provider)
	}

	clip := s.store.NewClip()
	if err := s.store.EnsureDir(); err != nil {
		return nil, err
	}

	res, err := engine.Synthesize(ctx, &speech.Request{
		Text:       text,
		OutputPath: clip.Path,
		Parameters: params,
	})
	if err != nil {
		slog.Error("Failed to synthesize speech", "provider", provider, "clip", clip.Name, "error", err)
		return nil, err
	}

	clip.Size = outputSize(res, clip.Path)

	slog.Info("Speech synthesized",
		"provider", provider,
		"clip", clip.Name,
		"bytes", clip.Size,
		"text_length", utf8.RuneCountInString(text))

	s.record(ctx, clip, text, provider)

	return clip, nil
}

// Open opens a clip produced by Speak.
func (s *Speech) Open(clip *audio.Clip) (*os.File, int64, error) {
	return s.store.Open(clip)
}

func (s *Speech) record(ctx context.Context, clip *audio.Clip, text string, provider speech.Provider) {
	if s.recorder == nil {
		return
	}

	err := s.recorder.Record(ctx, ledger.Entry{
		ID:         clip.ID,
		Name:       clip.Name,
		TextHash:   ledger.HashText(text),
		TextLength: utf8.RuneCountInString(text),
		Bytes:      clip.Size,
		Provider:   string(provider),
		CreatedAt:  time.Now(),
	})
	if err != nil {
		slog.Warn("Failed to record clip", "clip", clip.Name, "error", err)
	}
}

func outputSize(res *speech.Result, path string) int64 {
	if res != nil && res.Metadata != nil && res.Metadata.OutputBytes > 0 {
		return res.Metadata.OutputBytes
	}
	if info, err := os.Stat(path); err == nil {
		return info.Size()
	}
	return 0
}

package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Transcoder makes a WAV-producing engine emit MP3: the inner engine writes
// a sibling .wav file which ffmpeg encodes into the requested output path.
type Transcoder struct {
	inner  Engine
	ffmpeg *Executor
}

// NewTranscoder wraps inner so its output is encoded by the ffmpeg executor.
func NewTranscoder(inner Engine, ffmpeg *Executor) *Transcoder {
	return &Transcoder{inner: inner, ffmpeg: ffmpeg}
}

// Provider returns the wrapped engine's provider.
func (t *Transcoder) Provider() Provider {
	return t.inner.Provider()
}

// Synthesize runs the inner engine then encodes its WAV output to MP3.
func (t *Transcoder) Synthesize(ctx context.Context, req *Request) (*Result, error) {
	wav := req.OutputPath + ".wav"
	defer func() {
		if err := os.Remove(wav); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove intermediate audio", "path", wav, "error", err)
		}
	}()

	innerReq := *req
	innerReq.OutputPath = wav

	res, err := t.inner.Synthesize(ctx, &innerReq)
	if err != nil {
		return nil, err
	}

	if _, _, err := t.ffmpeg.Execute(ctx, t.buildArgs(wav, req.OutputPath), nil); err != nil {
		return nil, fmt.Errorf("speech: transcode failed: %w", err)
	}

	size, err := StatOutput(req.OutputPath)
	if err != nil {
		return nil, err
	}

	meta := res.Metadata
	if meta == nil {
		meta = &Metadata{Provider: t.Provider()}
	}
	meta.OutputBytes = size
	if meta.EngineSpecific == nil {
		meta.EngineSpecific = map[string]any{}
	}
	meta.EngineSpecific["transcoded"] = "mp3"

	return &Result{Path: req.OutputPath, Metadata: meta}, nil
}

func (t *Transcoder) buildArgs(in, out string) []string {
	return []string{
		"-y",
		"-loglevel", "error",
		"-i", in,
		"-codec:a", "libmp3lame",
		"-q:a", "4",
		out,
	}
}

// Close closes the wrapped engine.
func (t *Transcoder) Close() error {
	return t.inner.Close()
}

package piper

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ekisa-team/narrator/internal/speech"
	"github.com/ekisa-team/narrator/mapsafe"
)

// Provider identifies the Piper engine.
const Provider speech.Provider = "piper"

// Engine implements speech.Engine for Piper TTS.
type Engine struct {
	executor  *speech.Executor
	modelPath string
}

// New creates a Piper engine running binPath with the given voice model.
func New(binPath, modelPath string, timeout time.Duration) (*Engine, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("piper: voice model path is required")
	}

	executor, err := speech.NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return NewWithExecutor(executor, modelPath), nil
}

// NewWithExecutor creates an engine around an existing executor.
func NewWithExecutor(executor *speech.Executor, modelPath string) *Engine {
	return &Engine{executor: executor, modelPath: modelPath}
}

// Provider returns the engine identifier.
func (e *Engine) Provider() speech.Provider {
	return Provider
}

// Synthesize speaks req.Text into a WAV file at req.OutputPath.
// Piper reads text from stdin and writes to --output_file.
func (e *Engine) Synthesize(ctx context.Context, req *speech.Request) (*speech.Result, error) {
	started := time.Now()
	args := e.buildArgs(req)

	stdout, stderr, err := e.executor.Execute(ctx, args, strings.NewReader(req.Text))
	if err != nil {
		return nil, fmt.Errorf("piper: execution failed: %w", err)
	}

	size, err := speech.StatOutput(req.OutputPath)
	if err != nil {
		return nil, err
	}

	return &speech.Result{
		Path: req.OutputPath,
		Metadata: &speech.Metadata{
			Provider:    Provider,
			Voice:       strings.TrimSuffix(filepath.Base(e.modelPath), filepath.Ext(e.modelPath)),
			Timestamp:   time.Now(),
			Elapsed:     time.Since(started),
			OutputBytes: size,
			EngineSpecific: map[string]any{
				"stdout": string(stdout),
				"stderr": string(stderr),
				"args":   args,
			},
		},
	}, nil
}

// buildArgs builds Piper command-line arguments.
func (e *Engine) buildArgs(req *speech.Request) []string {
	args := []string{
		"--model", e.modelPath,
		"--output_file", req.OutputPath,
	}

	p := req.Parameters
	if p == nil {
		return args
	}

	// Speaker ID
	if v := mapsafe.Get(p, "speaker_id", -1); v >= 0 {
		args = append(args, "--speaker", strconv.Itoa(v))
	}

	// Length scale (speed)
	if v := mapsafe.Get(p, "length_scale", 0.0); v > 0 {
		args = append(args, "--length_scale", fmt.Sprintf("%.2f", v))
	}

	// Noise scale
	if v := mapsafe.Get(p, "noise_scale", 0.0); v > 0 {
		args = append(args, "--noise_scale", fmt.Sprintf("%.2f", v))
	}

	// Noise width
	if v := mapsafe.Get(p, "noise_w", 0.0); v > 0 {
		args = append(args, "--noise_w", fmt.Sprintf("%.2f", v))
	}

	// Sentence silence
	if v := mapsafe.Get(p, "sentence_silence", 0.0); v > 0 {
		args = append(args, "--sentence_silence", fmt.Sprintf("%.2f", v))
	}

	return args
}

// Close cleans up resources. Piper does not have any resources to clean up.
func (e *Engine) Close() error {
	return nil
}

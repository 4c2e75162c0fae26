package espeak

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ekisa-team/narrator/internal/speech"
	"github.com/ekisa-team/narrator/mapsafe"
)

// Provider identifies the eSpeak NG engine.
const Provider speech.Provider = "espeak"

const defaultVoice = "en"

// Engine implements speech.Engine for eSpeak NG.
type Engine struct {
	executor *speech.Executor
}

// New creates an eSpeak engine running binPath (espeak-ng or espeak).
func New(binPath string, timeout time.Duration) (*Engine, error) {
	executor, err := speech.NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return &Engine{executor: executor}, nil
}

// NewWithExecutor creates an engine around an existing executor.
func NewWithExecutor(executor *speech.Executor) *Engine {
	return &Engine{executor: executor}
}

// Provider returns the engine identifier.
func (e *Engine) Provider() speech.Provider {
	return Provider
}

// Synthesize speaks req.Text into a WAV file at req.OutputPath.
// Text is passed on stdin so it is never interpreted as a flag.
func (e *Engine) Synthesize(ctx context.Context, req *speech.Request) (*speech.Result, error) {
	started := time.Now()
	args := e.buildArgs(req)

	stdout, stderr, err := e.executor.Execute(ctx, args, strings.NewReader(req.Text))
	if err != nil {
		return nil, fmt.Errorf("espeak: execution failed: %w", err)
	}

	size, err := speech.StatOutput(req.OutputPath)
	if err != nil {
		return nil, err
	}

	return &speech.Result{
		Path: req.OutputPath,
		Metadata: &speech.Metadata{
			Provider:    Provider,
			Voice:       mapsafe.Get(req.Parameters, "voice", defaultVoice),
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

// buildArgs builds eSpeak command-line arguments.
func (e *Engine) buildArgs(req *speech.Request) []string {
	p := req.Parameters

	args := []string{
		"-v", mapsafe.Get(p, "voice", defaultVoice),
		"-w", req.OutputPath,
	}

	// Words per minute
	if v := mapsafe.Get(p, "speed", 0); v > 0 {
		args = append(args, "-s", strconv.Itoa(v))
	}

	// Pitch (0-99)
	if v := mapsafe.Get(p, "pitch", -1); v >= 0 {
		args = append(args, "-p", strconv.Itoa(v))
	}

	// Amplitude (0-200)
	if v := mapsafe.Get(p, "amplitude", -1); v >= 0 {
		args = append(args, "-a", strconv.Itoa(v))
	}

	// Pause between words, in units of 10ms
	if v := mapsafe.Get(p, "word_gap", 0); v > 0 {
		args = append(args, "-g", strconv.Itoa(v))
	}

	return append(args, "--stdin")
}

// Close cleans up resources. eSpeak runs one process per call and holds none.
func (e *Engine) Close() error {
	return nil
}

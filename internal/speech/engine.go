package speech

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Provider is a string identifier for a speech engine.
type Provider string

// Engine defines the interface every text-to-speech engine implements.
// Engines write the synthesized audio to Request.OutputPath.
type Engine interface {
	// Provider returns the engine identifier.
	Provider() Provider

	// Synthesize renders Request.Text and writes it to Request.OutputPath.
	// It blocks until the file is complete.
	Synthesize(ctx context.Context, req *Request) (*Result, error)

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for a synthesis call.
type Request struct {
	// Text is the text to speak.
	Text string

	// OutputPath is where the audio file must be written.
	OutputPath string

	// Parameters contains engine-specific parameters (voice, speed, ...).
	Parameters map[string]any
}

// Result describes a finished synthesis.
type Result struct {
	// Path is the written audio file.
	Path string

	// Metadata contains engine-specific information.
	Metadata *Metadata
}

// Metadata contains metadata about a synthesis.
type Metadata struct {
	Provider       Provider       `json:"provider"`
	Voice          string         `json:"voice,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Elapsed        time.Duration  `json:"elapsed"`
	OutputBytes    int64          `json:"output_bytes"`
	EngineSpecific map[string]any `json:"engine_specific,omitempty"`
}

// StatOutput returns the size of an engine output file. A missing or empty
// file yields ErrEmptyOutput.
func StatOutput(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEmptyOutput, path, err)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyOutput, path)
	}
	return info.Size(), nil
}

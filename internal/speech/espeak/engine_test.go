package espeak

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/narrator/internal/speech"
)

type writingRunner struct {
	args  []string
	stdin string
	err   error
}

func (w *writingRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	w.args = args
	b, _ := io.ReadAll(stdin)
	w.stdin = string(b)
	if w.err != nil {
		return nil, []byte("espeak failure"), w.err
	}

	for i, a := range args {
		if a == "-w" {
			return nil, nil, os.WriteFile(args[i+1], []byte("RIFF....WAVE"), 0o644)
		}
	}
	return nil, nil, nil
}

func TestEngine_Synthesize(t *testing.T) {
	runner := &writingRunner{}
	e := NewWithExecutor(speech.NewExecutorWithRunner("espeak-ng", time.Second, runner))
	out := filepath.Join(t.TempDir(), "audio_1.mp3")

	res, err := e.Synthesize(context.Background(), &speech.Request{
		Text:       "-v is not a flag here",
		OutputPath: out,
		Parameters: map[string]any{"voice": "en-us", "speed": 150, "pitch": 0},
	})
	require.NoError(t, err)

	assert.Equal(t, Provider, e.Provider())
	assert.Equal(t, out, res.Path)
	assert.Equal(t, "en-us", res.Metadata.Voice)
	assert.Equal(t, int64(12), res.Metadata.OutputBytes)
	assert.Equal(t, "-v is not a flag here", runner.stdin)
	assert.Equal(t, []string{"-v", "en-us", "-w", out, "-s", "150", "-p", "0", "--stdin"}, runner.args)
}

func TestEngine_BuildArgsDefaults(t *testing.T) {
	e := &Engine{}
	args := e.buildArgs(&speech.Request{OutputPath: "/tmp/a.wav"})

	assert.Equal(t, []string{"-v", "en", "-w", "/tmp/a.wav", "--stdin"}, args)
}

func TestEngine_SynthesizeFailure(t *testing.T) {
	runner := &writingRunner{err: errors.New("exit status 1")}
	e := NewWithExecutor(speech.NewExecutorWithRunner("espeak-ng", time.Second, runner))

	_, err := e.Synthesize(context.Background(), &speech.Request{Text: "hi", OutputPath: filepath.Join(t.TempDir(), "a.wav")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "espeak failure")
}

func TestEngine_NoOutputFile(t *testing.T) {
	silent := runnerFunc(func(args []string) error { return nil })
	e := NewWithExecutor(speech.NewExecutorWithRunner("espeak-ng", time.Second, silent))

	_, err := e.Synthesize(context.Background(), &speech.Request{Text: "hi", OutputPath: filepath.Join(t.TempDir(), "a.wav")})
	assert.ErrorIs(t, err, speech.ErrEmptyOutput)
}

type runnerFunc func(args []string) error

func (f runnerFunc) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	return nil, nil, f(args)
}

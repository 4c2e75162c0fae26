package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Execute(t *testing.T) {
	runner := &fakeRunner{outputFlag: "-w"}
	out := t.TempDir() + "/x.wav"
	e := NewExecutorWithRunner("/usr/bin/espeak-ng", time.Second, runner)

	stdout, _, err := e.Execute(context.Background(), []string{"-w", out}, strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, "ok", string(stdout))
	assert.Equal(t, []string{"/usr/bin/espeak-ng", "-w", out}, runner.calls[0])
	assert.Equal(t, []string{"hello"}, runner.stdin)
	assert.Equal(t, "/usr/bin/espeak-ng", e.BinaryPath())
}

func TestExecutor_ExecuteIncludesStderr(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("no voice named xx\n")}
	e := NewExecutorWithRunner("espeak-ng", time.Second, runner)

	_, _, err := e.Execute(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no voice named xx")
}

func TestExecutor_ExecuteCanceled(t *testing.T) {
	runner := &fakeRunner{err: errors.New("signal: killed")}
	e := NewExecutorWithRunner("espeak-ng", time.Second, runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Execute(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewExecutor_MissingBinary(t *testing.T) {
	_, err := NewExecutor("/nonexistent/espeak-ng", time.Second)
	assert.Error(t, err)
}

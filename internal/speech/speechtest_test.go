package speech

import (
	"context"
	"io"
	"os"
	"sync"
)

// fakeRunner records invocations and writes fake audio to the path that
// follows outputFlag.
type fakeRunner struct {
	mu         sync.Mutex
	outputFlag string
	calls      [][]string
	stdin      []string
	err        error
	stderr     []byte
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	if stdin != nil {
		b, _ := io.ReadAll(stdin)
		f.stdin = append(f.stdin, string(b))
	}

	if f.err != nil {
		return nil, f.stderr, f.err
	}

	out := ""
	if f.outputFlag == "" && len(args) > 0 {
		out = args[len(args)-1]
	}
	for i, a := range args {
		if a == f.outputFlag && i+1 < len(args) {
			out = args[i+1]
		}
	}
	if out != "" {
		if err := os.WriteFile(out, []byte("ID3fake-audio"), 0o644); err != nil {
			return nil, nil, err
		}
	}

	return []byte("ok"), nil, nil
}

package speech

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

// PooledEngine bounds the number of concurrent syntheses of an engine with
// an ants worker pool. A size of one serializes access to the engine.
type PooledEngine struct {
	inner Engine
	pool  *ants.Pool
}

type outcome struct {
	result *Result
	err    error
}

// NewPooledEngine wraps inner with a pool of the given size.
func NewPooledEngine(inner Engine, size int) (*PooledEngine, error) {
	if size <= 0 {
		size = 1
	}

	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(p any) {
		slog.Error("Panic in speech worker pool", "provider", inner.Provider(), "panic", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("speech: failed to create worker pool: %w", err)
	}

	return &PooledEngine{inner: inner, pool: pool}, nil
}

// Provider returns the wrapped engine's provider.
func (p *PooledEngine) Provider() Provider {
	return p.inner.Provider()
}

// Synthesize queues the request on the pool and waits for its result.
// Requests whose context ends while queued are skipped.
func (p *PooledEngine) Synthesize(ctx context.Context, req *Request) (*Result, error) {
	done := make(chan outcome, 1)

	task := func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrEnginePanic, r)}
				panic(r)
			}
		}()

		if err := ctx.Err(); err != nil {
			done <- outcome{err: err}
			return
		}

		res, err := p.inner.Synthesize(ctx, req)
		done <- outcome{result: res, err: err}
	}

	if err := p.pool.Submit(task); err != nil {
		return nil, fmt.Errorf("speech: failed to submit synthesis: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.result, o.err
	}
}

// Stats returns the number of running workers and the pool capacity.
func (p *PooledEngine) Stats() (running, capacity int) {
	return p.pool.Running(), p.pool.Cap()
}

// Close releases the pool and closes the wrapped engine.
func (p *PooledEngine) Close() error {
	p.pool.Release()
	return p.inner.Close()
}

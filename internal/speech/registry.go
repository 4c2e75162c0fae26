package speech

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Registry manages long-lived engine instances, one per provider.
type Registry struct {
	engines map[Provider]Engine
	mu      sync.RWMutex
}

// NewRegistry creates a new engine registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[Provider]Engine),
	}
}

// Register adds an engine to the registry.
func (r *Registry) Register(e Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := e.Provider()
	if _, exists := r.engines[p]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, p)
	}

	r.engines[p] = e
	return nil
}

// Get retrieves an engine by provider.
func (r *Registry) Get(p Provider) (Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[p]
	return e, ok
}

// Providers returns the registered providers in sorted order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.engines))
	for p := range r.engines {
		out = append(out, p)
	}
	slices.Sort(out)

	return out
}

// Close closes all registered engines and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, e := range r.engines {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.engines = make(map[Provider]Engine)

	return errors.Join(errs...)
}

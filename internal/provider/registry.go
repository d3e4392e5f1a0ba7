// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package provider

import (
	"sort"
	"sync"
	"time"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// Candidate is one configured provider plus its race parameters. Priority
// orders candidates for logs and iteration only; selection is a race, not
// sequential failover.
type Candidate struct {
	Provider Provider
	Priority int
	Timeout  time.Duration
}

// Registry holds the configured providers. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	candidates map[string]Candidate
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{candidates: make(map[string]Candidate)}
}

// Register adds a provider with its priority and per-call timeout.
// Re-registering a name replaces the previous candidate.
func (r *Registry) Register(p Provider, priority int, timeout time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[p.Name()] = Candidate{Provider: p, Priority: priority, Timeout: timeout}
}

// Get retrieves a candidate by provider name.
func (r *Registry) Get(name string) (Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.candidates[name]
	if !ok {
		return Candidate{}, icerr.New(icerr.CodeProviderUnknown,
			"provider not registered: "+name, icerr.FieldProvider(name))
	}
	return c, nil
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.candidates)
}

// Eligible returns the candidates the tracker currently admits, sorted by
// priority then name for stable iteration.
func (r *Registry) Eligible(t *Tracker) []Candidate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Candidate, 0, len(r.candidates))
	for name, c := range r.candidates {
		if t.Eligible(name) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Provider.Name() < out[j].Provider.Name()
	})
	return out
}

// Close shuts down all registered providers.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, c := range r.candidates {
		if err := c.Provider.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return icerr.Join(errs...)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a minimal Provider for registry tests.
type stubProvider struct {
	name   string
	closed bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(_ context.Context, _ string) (string, error) {
	return "stub message", nil
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(&stubProvider{name: "anthropic"}, 1, 8*time.Second)

	c, err := r.Get("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Provider.Name())
	assert.Equal(t, 1, c.Priority)
	assert.Equal(t, 8*time.Second, c.Timeout)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := provider.NewRegistry()

	_, err := r.Get("nope")
	require.Error(t, err)
	assert.Equal(t, icerr.CodeProviderUnknown, icerr.CodeOf(err))
}

func TestRegistry_EligibleFiltersAndSorts(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(&stubProvider{name: "google"}, 3, 20*time.Second)
	r.Register(&stubProvider{name: "anthropic"}, 1, 8*time.Second)
	r.Register(&stubProvider{name: "openai"}, 2, 8*time.Second)

	tr, err := provider.NewTracker(3, 30*time.Second)
	require.NoError(t, err)
	tr.Register("google", 3)
	tr.Register("anthropic", 1)
	tr.Register("openai", 2)

	// Trip openai's circuit.
	for i := 0; i < 3; i++ {
		tr.ReportFailure("openai")
	}

	got := r.Eligible(tr)
	require.Len(t, got, 2)
	assert.Equal(t, "anthropic", got[0].Provider.Name())
	assert.Equal(t, "google", got[1].Provider.Name())
}

func TestRegistry_EligibleEmptyWhenNoneRegisteredWithTracker(t *testing.T) {
	r := provider.NewRegistry()
	r.Register(&stubProvider{name: "anthropic"}, 1, 8*time.Second)

	tr, err := provider.NewTracker(3, 30*time.Second)
	require.NoError(t, err)

	assert.Empty(t, r.Eligible(tr))
}

func TestRegistry_Close(t *testing.T) {
	a := &stubProvider{name: "a"}
	b := &stubProvider{name: "b"}
	r := provider.NewRegistry()
	r.Register(a, 1, time.Second)
	r.Register(b, 2, time.Second)

	require.NoError(t, r.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package anthropic_test

import (
	"testing"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	"github.com/prashant-zo/IntelliCommit/internal/provider/anthropic"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface satisfaction check.
var _ provider.Provider = (*anthropic.Provider)(nil)

func TestAnthropicProvider_Name(t *testing.T) {
	p, err := anthropic.New(anthropic.Config{APIKey: "test-key-not-real"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
}

func TestAnthropicProvider_MissingAPIKey(t *testing.T) {
	_, err := anthropic.New(anthropic.Config{})
	require.Error(t, err)
	assert.True(t, icerr.HasCode(err, icerr.CodeProviderNotConfigured))
}

func TestAnthropicProvider_Close(t *testing.T) {
	p, err := anthropic.New(anthropic.Config{APIKey: "test-key-not-real"})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

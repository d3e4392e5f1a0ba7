// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package openai_test

import (
	"testing"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	"github.com/prashant-zo/IntelliCommit/internal/provider/openai"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface satisfaction check.
var _ provider.Provider = (*openai.Provider)(nil)

func TestOpenAIProvider_Name(t *testing.T) {
	p, err := openai.New(openai.Config{APIKey: "test-key-not-real"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}

func TestOpenAIProvider_MissingAPIKey(t *testing.T) {
	_, err := openai.New(openai.Config{})
	require.Error(t, err)
	assert.True(t, icerr.HasCode(err, icerr.CodeProviderNotConfigured))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package google_test

import (
	"testing"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	"github.com/prashant-zo/IntelliCommit/internal/provider/google"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface satisfaction check.
var _ provider.Provider = (*google.Provider)(nil)

func TestGoogleProvider_MissingAPIKey(t *testing.T) {
	_, err := google.New(google.Config{})
	require.Error(t, err)
	assert.True(t, icerr.HasCode(err, icerr.CodeProviderNotConfigured))
}

func TestGoogleProvider_Name(t *testing.T) {
	p, err := google.New(google.Config{APIKey: "test-key-not-real"})
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())
}

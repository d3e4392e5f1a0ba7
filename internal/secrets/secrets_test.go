// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package secrets_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/prashant-zo/IntelliCommit/internal/secrets"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

func TestMain(m *testing.M) {
	// Mock keyring so tests never touch the real OS keyring.
	keyring.MockInit()
	m.Run()
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	ks := secrets.NewKeyringStore()

	require.NoError(t, ks.Set("intellicommit", "anthropic-api-key", "sk-test-value"))

	got, err := ks.Get("intellicommit", "anthropic-api-key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-value", got)

	keys, err := ks.List("intellicommit")
	require.NoError(t, err)
	assert.Contains(t, keys, "anthropic-api-key")

	require.NoError(t, ks.Delete("intellicommit", "anthropic-api-key"))

	_, err = ks.Get("intellicommit", "anthropic-api-key")
	require.Error(t, err)
	assert.True(t, icerr.HasCode(err, icerr.CodeSecretNotFound))

	keys, err = ks.List("intellicommit")
	require.NoError(t, err)
	assert.NotContains(t, keys, "anthropic-api-key")
}

func TestKeyringStore_ValidatesInput(t *testing.T) {
	ks := secrets.NewKeyringStore()

	err := ks.Set("", "key", "v")
	assert.True(t, icerr.HasCode(err, icerr.CodeSecretInvalidInput))

	err = ks.Set("svc", "", "v")
	assert.True(t, icerr.HasCode(err, icerr.CodeSecretInvalidInput))

	_, err = ks.Get("svc", "")
	assert.True(t, icerr.HasCode(err, icerr.CodeSecretInvalidInput))
}

func TestKeyringStore_DeleteMissing(t *testing.T) {
	ks := secrets.NewKeyringStore()
	err := ks.Delete("intellicommit", "never-stored")
	require.Error(t, err)
	assert.True(t, icerr.HasCode(err, icerr.CodeSecretNotFound))
}

func TestParseKeyringURI(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		wantService string
		wantKey     string
		wantErr     bool
	}{
		{"valid", "keyring://intellicommit/anthropic-api-key", "intellicommit", "anthropic-api-key", false},
		{"slashes in key", "keyring://svc/path/to/key", "svc", "path/to/key", false},
		{"not a keyring URI", "vault://secret/key", "", "", true},
		{"missing key", "keyring://svc/", "", "", true},
		{"missing service", "keyring:///key", "", "", true},
		{"no path", "keyring://svc", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, key, err := secrets.ParseKeyringURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, icerr.HasCode(err, icerr.CodeSecretInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantService, svc)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestResolve(t *testing.T) {
	ks := secrets.NewKeyringStore()
	require.NoError(t, ks.Set("intellicommit", "openai-api-key", "resolved-secret"))

	t.Run("resolves keyring URI", func(t *testing.T) {
		val, err := secrets.Resolve(ks, "keyring://intellicommit/openai-api-key")
		require.NoError(t, err)
		assert.Equal(t, "resolved-secret", val)
	})

	t.Run("passes literal values through", func(t *testing.T) {
		val, err := secrets.Resolve(ks, "sk-literal")
		require.NoError(t, err)
		assert.Equal(t, "sk-literal", val)
	})

	t.Run("missing secret errors", func(t *testing.T) {
		_, err := secrets.Resolve(ks, "keyring://intellicommit/absent")
		require.Error(t, err)
		assert.True(t, icerr.HasCode(err, icerr.CodeSecretResolveFailure))
	})
}

func TestResolveViperSecrets(t *testing.T) {
	ks := secrets.NewKeyringStore()
	require.NoError(t, ks.Set("intellicommit", "gemini-api-key", "g-secret"))

	v := viper.New()
	v.Set("providers.google.api_key", "keyring://intellicommit/gemini-api-key")
	v.Set("providers.anthropic.api_key", "literal-key")
	v.Set("providers.openai.api_key", "keyring://intellicommit/unknown")

	secrets.ResolveViperSecrets(v, ks)

	assert.Equal(t, "g-secret", v.GetString("providers.google.api_key"))
	assert.Equal(t, "literal-key", v.GetString("providers.anthropic.api_key"))
	// Unresolvable URIs stay in place.
	assert.Equal(t, "keyring://intellicommit/unknown", v.GetString("providers.openai.api_key"))
}

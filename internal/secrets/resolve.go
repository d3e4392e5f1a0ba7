// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package secrets

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

const keyringScheme = "keyring://"

// IsKeyringURI reports whether value uses the keyring:// URI scheme.
func IsKeyringURI(value string) bool {
	return strings.HasPrefix(value, keyringScheme)
}

// ParseKeyringURI splits a keyring://service/key URI into its parts.
func ParseKeyringURI(uri string) (service, key string, err error) {
	if !IsKeyringURI(uri) {
		return "", "", icerr.Errorf(icerr.CodeSecretInvalidInput, "not a keyring URI: %q", uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, keyringScheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", icerr.Errorf(icerr.CodeSecretInvalidInput,
			"invalid keyring URI %q: expected keyring://service/key", uri)
	}
	return parts[0], parts[1], nil
}

// Resolve replaces a keyring:// URI with the secret it names. Values that
// are not keyring URIs pass through unchanged.
func Resolve(store Store, value string) (string, error) {
	if !IsKeyringURI(value) {
		return value, nil
	}

	service, key, err := ParseKeyringURI(value)
	if err != nil {
		return "", err
	}

	secret, err := store.Get(service, key)
	if err != nil {
		return "", icerr.Wrapf(err, icerr.CodeSecretResolveFailure, "resolving keyring URI %q", value)
	}
	return secret, nil
}

// ResolveViperSecrets resolves every keyring:// string value in v after
// config load. Failures keep the original URI and log a warning; the
// error surfaces later when the value is actually used.
func ResolveViperSecrets(v *viper.Viper, store Store) {
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if !IsKeyringURI(val) {
			continue
		}

		resolved, err := Resolve(store, val)
		if err != nil {
			slog.Warn("keyring URI left unresolved", "config_key", key, "error", err)
			continue
		}
		v.Set(key, resolved)
	}
}

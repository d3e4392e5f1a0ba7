// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package secrets stores provider API keys in the OS keyring so they
// never need to live in config files. Config values may reference stored
// keys with the keyring://service/key URI scheme.
package secrets

// Store is secure secret storage. The default implementation uses the OS
// keyring; tests substitute an in-memory store.
type Store interface {
	// Set saves a secret value under the given service and key.
	Set(service, key, value string) error

	// Get fetches the secret value for the given service and key.
	// A missing key yields CodeSecretNotFound.
	Get(service, key string) (string, error)

	// Delete removes the secret for the given service and key.
	// A missing key yields CodeSecretNotFound.
	Delete(service, key string) error

	// List returns the key names stored under the given service.
	List(service string) ([]string, error)
}

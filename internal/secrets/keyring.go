// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package secrets

import (
	"encoding/json"
	"errors"
	"log/slog"
	"slices"

	"github.com/zalando/go-keyring"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// indexSuffix forms the keyring entry that tracks stored key names per
// service. go-keyring cannot enumerate keys, so List reads this JSON
// index instead.
const indexSuffix = "::index"

// KeyringStore implements Store on the OS keyring (Keychain on macOS,
// secret-service on Linux, Credential Manager on Windows).
type KeyringStore struct{}

var _ Store = (*KeyringStore)(nil)

// NewKeyringStore returns a KeyringStore.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Set(service, key, value string) error {
	if err := validate(service, key); err != nil {
		return err
	}
	if err := keyring.Set(service, key, value); err != nil {
		return icerr.Wrapf(err, icerr.CodeSecretStoreFailure, "storing secret %s/%s", service, key)
	}
	return s.indexAdd(service, key)
}

func (s *KeyringStore) Get(service, key string) (string, error) {
	if err := validate(service, key); err != nil {
		return "", err
	}
	val, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", icerr.Errorf(icerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
		}
		return "", icerr.Wrapf(err, icerr.CodeSecretStoreFailure, "retrieving secret %s/%s", service, key)
	}
	return val, nil
}

func (s *KeyringStore) Delete(service, key string) error {
	if err := validate(service, key); err != nil {
		return err
	}
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return icerr.Errorf(icerr.CodeSecretNotFound, "secret %s/%s not found", service, key)
		}
		return icerr.Wrapf(err, icerr.CodeSecretDeleteFailure, "deleting secret %s/%s", service, key)
	}
	return s.indexRemove(service, key)
}

func (s *KeyringStore) List(service string) ([]string, error) {
	return s.indexLoad(service)
}

func validate(service, key string) error {
	if service == "" {
		return icerr.New(icerr.CodeSecretInvalidInput, "secret service must not be empty")
	}
	if key == "" {
		return icerr.New(icerr.CodeSecretInvalidInput, "secret key must not be empty")
	}
	return nil
}

func (s *KeyringStore) indexLoad(service string) ([]string, error) {
	raw, err := keyring.Get(service, service+indexSuffix)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, icerr.Wrapf(err, icerr.CodeSecretListFailure, "loading key index for %s", service)
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeSecretListFailure, "decoding key index for %s", service)
	}
	return keys, nil
}

func (s *KeyringStore) indexSave(service string, keys []string) error {
	indexKey := service + indexSuffix

	if len(keys) == 0 {
		if err := keyring.Delete(service, indexKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			slog.Debug("removing empty key index failed", "service", service, "error", err)
		}
		return nil
	}

	data, err := json.Marshal(keys)
	if err != nil {
		return icerr.Wrapf(err, icerr.CodeSecretListFailure, "encoding key index for %s", service)
	}
	if err := keyring.Set(service, indexKey, string(data)); err != nil {
		return icerr.Wrapf(err, icerr.CodeSecretListFailure, "saving key index for %s", service)
	}
	return nil
}

func (s *KeyringStore) indexAdd(service, key string) error {
	keys, err := s.indexLoad(service)
	if err != nil {
		return err
	}
	if slices.Contains(keys, key) {
		return nil
	}
	return s.indexSave(service, append(keys, key))
}

func (s *KeyringStore) indexRemove(service, key string) error {
	keys, err := s.indexLoad(service)
	if err != nil {
		return err
	}
	return s.indexSave(service, slices.DeleteFunc(keys, func(k string) bool { return k == key }))
}

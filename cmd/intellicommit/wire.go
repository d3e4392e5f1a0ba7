// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package main

import (
	"log/slog"
	"time"

	"github.com/prashant-zo/IntelliCommit/internal/cache"
	"github.com/prashant-zo/IntelliCommit/internal/config"
	"github.com/prashant-zo/IntelliCommit/internal/engine"
	"github.com/prashant-zo/IntelliCommit/internal/history"
	"github.com/prashant-zo/IntelliCommit/internal/provider"
	anthropicprov "github.com/prashant-zo/IntelliCommit/internal/provider/anthropic"
	googleprov "github.com/prashant-zo/IntelliCommit/internal/provider/google"
	openaiprov "github.com/prashant-zo/IntelliCommit/internal/provider/openai"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// App holds the wired subsystems and manages their lifecycle.
type App struct {
	Engine   *engine.Engine
	Registry *provider.Registry
	History  *history.Store
}

// WireApp constructs the engine and its dependencies from config.
// Providers without an API key are skipped; an App with zero providers
// still works and always answers from the local generator.
func WireApp(cfg *config.Config) (*App, error) {
	tracker, err := provider.NewTracker(cfg.Generation.FailureThreshold, cfg.Generation.RecoveryWindow)
	if err != nil {
		return nil, icerr.Wrap(err, icerr.CodeCLISetupFailure, "creating health tracker")
	}

	registry := provider.NewRegistry()
	for _, name := range cfg.Configured() {
		pc := cfg.Providers[name]

		p, err := buildProvider(name, pc)
		if err != nil {
			return nil, icerr.Wrapf(err, icerr.CodeCLISetupFailure, "configuring provider %s", name)
		}

		timeout := pc.Timeout
		if timeout <= 0 {
			timeout = 8 * time.Second
		}
		registry.Register(p, pc.Priority, timeout)
		tracker.Register(name, pc.Priority)
		slog.Info("provider configured", "provider", name, "priority", pc.Priority, "timeout", timeout)
	}

	c, err := cache.New(cfg.Cache.Capacity, cfg.Cache.TTL)
	if err != nil {
		return nil, icerr.Wrap(err, icerr.CodeCLISetupFailure, "creating response cache")
	}

	exec, err := engine.NewRetryExecutor(tracker, cfg.Generation.MaxAttempts, cfg.Generation.RateLimitCooldown)
	if err != nil {
		return nil, icerr.Wrap(err, icerr.CodeCLISetupFailure, "creating retry executor")
	}

	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, icerr.Wrap(err, icerr.CodeCLISetupFailure, "opening history store")
		}
	}

	return &App{
		Engine:   engine.New(registry, tracker, c, exec, hist),
		Registry: registry,
		History:  hist,
	}, nil
}

// Close releases provider clients and the history store.
func (a *App) Close() error {
	errs := []error{a.Registry.Close()}
	if a.History != nil {
		errs = append(errs, a.History.Close())
	}
	return icerr.Join(errs...)
}

func buildProvider(name string, pc config.ProviderConfig) (provider.Provider, error) {
	switch name {
	case "anthropic":
		return anthropicprov.New(anthropicprov.Config{APIKey: pc.APIKey, Model: pc.Model, BaseURL: pc.BaseURL})
	case "openai":
		return openaiprov.New(openaiprov.Config{APIKey: pc.APIKey, Model: pc.Model, BaseURL: pc.BaseURL})
	case "google":
		return googleprov.New(googleprov.Config{APIKey: pc.APIKey, Model: pc.Model})
	default:
		return nil, icerr.Errorf(icerr.CodeProviderUnknown, "unknown provider %q", name)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package config loads IntelliCommit configuration from defaults, an
// optional file, and environment variables (prefix INTELLICOMMIT_, plus
// the conventional provider key variables).
package config

import (
	"errors"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/prashant-zo/IntelliCommit/internal/secrets"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// Config is the top-level IntelliCommit configuration.
type Config struct {
	Server     ServerConfig              `mapstructure:"server"`
	Providers  map[string]ProviderConfig `mapstructure:"providers"`
	Generation GenerationConfig          `mapstructure:"generation"`
	Cache      CacheConfig               `mapstructure:"cache"`
	History    HistoryConfig             `mapstructure:"history"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// ProviderConfig holds credentials, model, and timing for one provider.
type ProviderConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Priority int           `mapstructure:"priority"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GenerationConfig tunes retries and the circuit breaker.
type GenerationConfig struct {
	MaxAttempts       int           `mapstructure:"max_attempts"`
	FailureThreshold  int           `mapstructure:"failure_threshold"`
	RecoveryWindow    time.Duration `mapstructure:"recovery_window"`
	RateLimitCooldown time.Duration `mapstructure:"rate_limit_cooldown"`
}

// CacheConfig tunes the response cache.
type CacheConfig struct {
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// HistoryConfig controls generation history persistence.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// knownProviders are the provider names the engine can construct.
var knownProviders = map[string]bool{
	"anthropic": true,
	"openai":    true,
	"google":    true,
}

// SetDefaults installs the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", "127.0.0.1:8391")

	v.SetDefault("providers.anthropic.priority", 1)
	v.SetDefault("providers.anthropic.timeout", 8*time.Second)
	v.SetDefault("providers.openai.priority", 2)
	v.SetDefault("providers.openai.timeout", 8*time.Second)
	v.SetDefault("providers.google.priority", 3)
	v.SetDefault("providers.google.timeout", 20*time.Second)

	v.SetDefault("generation.max_attempts", 2)
	v.SetDefault("generation.failure_threshold", 3)
	v.SetDefault("generation.recovery_window", 30*time.Second)
	v.SetDefault("generation.rate_limit_cooldown", time.Minute)

	v.SetDefault("cache.capacity", 256)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "")
}

// SetupEnv wires environment variables: INTELLICOMMIT_ prefixed overrides
// for any key, plus the conventional per-provider key variables.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("INTELLICOMMIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The SDK-conventional variables work without the prefix.
	_ = v.BindEnv("providers.anthropic.api_key", "INTELLICOMMIT_PROVIDERS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("providers.openai.api_key", "INTELLICOMMIT_PROVIDERS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("providers.google.api_key", "INTELLICOMMIT_PROVIDERS_GOOGLE_API_KEY", "GEMINI_API_KEY")
}

// Load reads configuration from the given path (or defaults when path is
// empty) with environment overrides, resolving keyring:// secret URIs
// through the given store. A nil store skips secret resolution.
func Load(path string, store secrets.Store) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, icerr.Wrapf(err, icerr.CodeConfigLoadReadFailure, "reading config %s", path)
		}
	}

	return FromViper(v, store)
}

// FromViper unmarshals and validates a fully loaded viper instance,
// resolving keyring:// secret URIs first. A nil store skips resolution.
func FromViper(v *viper.Viper, store secrets.Store) (*Config, error) {
	if store != nil {
		secrets.ResolveViperSecrets(v, store)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeConfigValidateInvalidValue, "unmarshalling config")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, icerr.Wrapf(errors.Join(errs...), icerr.CodeConfigValidateInvalidValue, "validating config")
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors, collecting every
// issue rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	if c.Server.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
			errs = append(errs, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
				"server.listen %q is not host:port", c.Server.Listen))
		}
	}

	for name, p := range c.Providers {
		if !knownProviders[name] {
			errs = append(errs, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
				"unknown provider %q (want anthropic, openai, or google)", name))
		}
		if p.Timeout < 0 {
			errs = append(errs, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
				"providers.%s.timeout must not be negative", name))
		}
	}

	if c.Generation.MaxAttempts <= 0 {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"generation.max_attempts must be positive"))
	}
	if c.Generation.FailureThreshold <= 0 {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"generation.failure_threshold must be positive"))
	}
	if c.Generation.RecoveryWindow <= 0 {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"generation.recovery_window must be positive"))
	}

	if c.Cache.Capacity <= 0 {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"cache.capacity must be positive"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"cache.ttl must be positive"))
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, icerr.New(icerr.CodeConfigValidateInvalidValue,
			"history.path is required when history is enabled"))
	}

	return errs
}

// Configured returns the names of providers that have an API key set,
// i.e. the ones the engine should register.
func (c *Config) Configured() []string {
	var names []string
	for _, name := range []string{"anthropic", "openai", "google"} {
		if p, ok := c.Providers[name]; ok && p.APIKey != "" {
			names = append(names, name)
		}
	}
	return names
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package engine orchestrates commit message generation: sanitize the
// diff, check the cache, race the eligible AI providers, and fall back to
// the deterministic local generator when every provider fails. A request
// with a non-empty diff always produces a message.
package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
	"github.com/prashant-zo/IntelliCommit/internal/cache"
	"github.com/prashant-zo/IntelliCommit/internal/history"
	"github.com/prashant-zo/IntelliCommit/internal/localgen"
	"github.com/prashant-zo/IntelliCommit/internal/provider"
	"github.com/prashant-zo/IntelliCommit/internal/sanitize"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// ProviderCache and ProviderLocal are the reserved provider labels for
// results that did not come from an AI provider.
const (
	ProviderCache = "cache"
	ProviderLocal = "local"
)

// Result is a completed generation.
type Result struct {
	RequestID string           `json:"request_id"`
	Message   string           `json:"message"`
	Provider  string           `json:"provider"`
	Cached    bool             `json:"cached"`
	Analysis  analyze.Analysis `json:"analysis"`
}

// Engine wires the generation pipeline together.
type Engine struct {
	registry *provider.Registry
	tracker  *provider.Tracker
	cache    *cache.Cache
	retry    *RetryExecutor
	history  *history.Store // nil disables history
}

// New assembles an Engine. The history store may be nil.
func New(registry *provider.Registry, tracker *provider.Tracker, c *cache.Cache, retry *RetryExecutor, hist *history.Store) *Engine {
	return &Engine{
		registry: registry,
		tracker:  tracker,
		cache:    c,
		retry:    retry,
		history:  hist,
	}
}

// Tracker exposes the health tracker for status reporting.
func (e *Engine) Tracker() *provider.Tracker {
	return e.tracker
}

// Generate produces a commit message for a raw git diff. An empty diff is
// the only error; every other failure mode resolves to the local
// generator, so callers can rely on getting a message back.
func (e *Engine) Generate(ctx context.Context, rawDiff string) (Result, error) {
	if strings.TrimSpace(rawDiff) == "" {
		return Result{}, icerr.New(icerr.CodeInputDiffInvalid, "diff must not be empty")
	}

	requestID := uuid.NewString()
	log := slog.With("request_id", requestID)

	diff := sanitize.Sanitize(rawDiff)
	key := cache.Fingerprint(diff)

	if entry, ok := e.cache.Get(key); ok {
		log.Debug("cache hit", "provider", entry.Provider)
		res := Result{
			RequestID: requestID,
			Message:   entry.Response,
			Provider:  ProviderCache,
			Cached:    true,
			Analysis:  entry.Analysis,
		}
		e.record(ctx, log, res)
		return res, nil
	}

	analysis := analyze.Analyze(diff)
	prompt := BuildPrompt(diff, analysis)

	res := Result{RequestID: requestID, Analysis: analysis}

	won, err := Race(ctx, e.retry, e.registry.Eligible(e.tracker), prompt)
	if err != nil {
		log.Warn("all providers unavailable, using local generator", "error", err)
		res.Message = localgen.Generate(diff, analysis)
		res.Provider = ProviderLocal
	} else {
		res.Message = won.Text
		res.Provider = won.Provider
		e.cache.Put(key, cache.Entry{
			Response: won.Text,
			Provider: won.Provider,
			Analysis: analysis,
		})
		log.Debug("provider won the race", "provider", won.Provider)
	}

	e.record(ctx, log, res)
	return res, nil
}

// record appends to history when a store is configured. Failures are
// logged and ignored.
func (e *Engine) record(ctx context.Context, log *slog.Logger, res Result) {
	if e.history == nil {
		return
	}
	err := e.history.Append(ctx, history.Record{
		RequestID:    res.RequestID,
		Provider:     res.Provider,
		ChangeType:   res.Analysis.ChangeType,
		Complexity:   res.Analysis.Complexity,
		Confidence:   res.Analysis.Confidence,
		FileName:     res.Analysis.FileName,
		TotalChanges: res.Analysis.TotalChanges,
		Cached:       res.Cached,
		Subject:      subjectOf(res.Message),
	})
	if err != nil {
		log.Warn("recording generation history failed", "error", err)
	}
}

// subjectOf returns the first line of a commit message.
func subjectOf(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}

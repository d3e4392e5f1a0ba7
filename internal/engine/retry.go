// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package engine

import (
	"context"
	"strings"
	"time"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// DefaultMaxAttempts is the attempt budget per provider per race.
const DefaultMaxAttempts = 2

// DefaultRateLimitCooldown excludes a rate-limited provider from races.
const DefaultRateLimitCooldown = time.Minute

// RetryExecutor wraps a single provider call with bounded retries and
// exponential backoff, reporting each final outcome to the health tracker.
type RetryExecutor struct {
	tracker           *provider.Tracker
	maxAttempts       int
	rateLimitCooldown time.Duration
	sleep             func(ctx context.Context, d time.Duration) error // for testing
}

// NewRetryExecutor creates a RetryExecutor. Returns an error if the
// attempt budget is not positive.
func NewRetryExecutor(tracker *provider.Tracker, maxAttempts int, rateLimitCooldown time.Duration) (*RetryExecutor, error) {
	if maxAttempts <= 0 {
		return nil, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
			"max attempts must be positive, got %d", maxAttempts)
	}
	if rateLimitCooldown <= 0 {
		rateLimitCooldown = DefaultRateLimitCooldown
	}
	return &RetryExecutor{
		tracker:           tracker,
		maxAttempts:       maxAttempts,
		rateLimitCooldown: rateLimitCooldown,
		sleep:             ctxSleep,
	}, nil
}

// SetSleepFunc overrides the backoff sleep (for testing).
func (e *RetryExecutor) SetSleepFunc(fn func(ctx context.Context, d time.Duration) error) {
	e.sleep = fn
}

// Execute runs up to maxAttempts calls against one candidate. Every
// attempt gets its own deadline from the candidate's timeout; timeouts,
// rejections, and empty text all count as failures alike. A success is
// reported with measured latency and returned immediately. Exhaustion
// reports one failure to the tracker (plus a cooldown when the last error
// was a rate limit) and propagates.
func (e *RetryExecutor) Execute(ctx context.Context, c provider.Candidate, prompt string) (string, error) {
	name := c.Provider.Name()

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := e.sleep(ctx, backoff(attempt-1)); err != nil {
				lastErr = icerr.Wrapf(err, icerr.CodeProviderTimeout, "%s: backoff interrupted", name)
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		start := time.Now()
		text, err := c.Provider.Generate(attemptCtx, prompt)
		cancel()

		if err == nil && strings.TrimSpace(text) != "" {
			e.tracker.ReportSuccess(name, time.Since(start))
			return text, nil
		}
		if err == nil {
			err = icerr.New(icerr.CodeProviderMalformed,
				name+": empty response text", icerr.FieldProvider(name))
		}
		lastErr = err

		// The race is over or the caller is gone; retrying is pointless.
		if ctx.Err() != nil {
			break
		}
	}

	// Losing a race is not a provider failure: when the surrounding
	// context was cancelled, the last error reflects the teardown, not
	// the provider's health. Only a half-open probe slot is returned.
	if ctx.Err() != nil {
		e.tracker.ReleaseProbe(name)
	} else {
		e.tracker.ReportFailure(name)
		if icerr.IsRateLimited(lastErr) {
			e.tracker.StartCooldown(name, e.rateLimitCooldown)
		}
	}

	return "", icerr.Wrap(lastErr, icerr.CodeProviderRetryExhausted,
		name+": attempts exhausted", icerr.FieldProvider(name))
}

// backoff returns 2^n seconds.
func backoff(n int) time.Duration {
	return time.Duration(1<<n) * time.Second
}

// ctxSleep waits for d or until ctx is done, whichever comes first.
func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

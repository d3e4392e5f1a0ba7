// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// RaceResult is the winning provider's output.
type RaceResult struct {
	Text     string
	Provider string
}

// Race launches one retrying task per candidate, all concurrently, and
// resolves to the first success. Candidate order carries no selection
// weight. On the first success the shared context is cancelled and every
// loser is awaited before returning, so in-flight connections and backoff
// timers are torn down rather than leaked. Loser errors are swallowed.
//
// Zero candidates, or all tasks failing, yields CodeProviderRaceAllFailed;
// the caller is expected to fall back to the local generator.
func Race(ctx context.Context, exec *RetryExecutor, candidates []provider.Candidate, prompt string) (RaceResult, error) {
	if len(candidates) == 0 {
		return RaceResult{}, icerr.New(icerr.CodeProviderRaceAllFailed, "no eligible providers")
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		text string
		name string
		err  error
	}

	// Buffered so losers finishing after the winner never block on send.
	results := make(chan outcome, len(candidates))

	var wg sync.WaitGroup
	for _, c := range candidates {
		wg.Add(1)
		go func(c provider.Candidate) {
			defer wg.Done()
			text, err := exec.Execute(raceCtx, c, prompt)
			results <- outcome{text: text, name: c.Provider.Name(), err: err}
		}(c)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed int
	for out := range results {
		if out.err == nil {
			cancel()
			wg.Wait()
			return RaceResult{Text: out.text, Provider: out.name}, nil
		}
		slog.Debug("provider lost the race", "provider", out.name, "error", out.err)
		failed++
	}

	return RaceResult{}, icerr.Errorf(icerr.CodeProviderRaceAllFailed,
		"all %d eligible providers failed", failed)
}

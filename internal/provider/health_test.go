// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package provider_test

import (
	"testing"
	"time"

	"github.com/prashant-zo/IntelliCommit/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) *provider.Tracker {
	t.Helper()
	tr, err := provider.NewTracker(provider.DefaultFailureThreshold, provider.DefaultRecoveryWindow)
	require.NoError(t, err)
	return tr
}

func TestTracker_StartsEligible(t *testing.T) {
	tr := newTracker(t)
	tr.Register("anthropic", 1)

	assert.True(t, tr.Eligible("anthropic"))
}

func TestTracker_UnknownProviderNeverEligible(t *testing.T) {
	tr := newTracker(t)
	assert.False(t, tr.Eligible("ghost"))
}

func TestTracker_CircuitTripsAtThreshold(t *testing.T) {
	tr := newTracker(t)
	tr.Register("openai", 2)

	tr.ReportFailure("openai")
	tr.ReportFailure("openai")
	assert.True(t, tr.Eligible("openai"), "two failures keep the circuit closed")

	tr.ReportFailure("openai")
	assert.False(t, tr.Eligible("openai"), "third consecutive failure opens the circuit")

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.False(t, snap[0].Healthy)
	assert.Equal(t, 3, snap[0].ConsecutiveFailures)
}

func TestTracker_SuccessClosesCircuit(t *testing.T) {
	tr := newTracker(t)
	tr.Register("openai", 2)

	for i := 0; i < 3; i++ {
		tr.ReportFailure("openai")
	}
	require.False(t, tr.Eligible("openai"))

	tr.ReportSuccess("openai", 120*time.Millisecond)

	assert.True(t, tr.Eligible("openai"))
	snap := tr.Snapshot()
	assert.True(t, snap[0].Healthy)
	assert.Zero(t, snap[0].ConsecutiveFailures)
	assert.NotNil(t, snap[0].LastSuccessAt)
}

func TestTracker_HalfOpenProbeAfterRecoveryWindow(t *testing.T) {
	tr, err := provider.NewTracker(3, 30*time.Second)
	require.NoError(t, err)
	tr.Register("google", 3)

	now := time.Now()
	tr.SetNowFunc(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		tr.ReportFailure("google")
	}
	assert.False(t, tr.Eligible("google"))

	tr.SetNowFunc(func() time.Time { return now.Add(29 * time.Second) })
	assert.False(t, tr.Eligible("google"), "still inside the recovery window")

	tr.SetNowFunc(func() time.Time { return now.Add(31 * time.Second) })
	assert.True(t, tr.Eligible("google"), "re-admitted for a half-open probe")
	assert.False(t, tr.Eligible("google"), "only one probe slot until a report lands")

	// A failed probe restarts the window.
	tr.ReportFailure("google")
	tr.SetNowFunc(func() time.Time { return now.Add(32 * time.Second) })
	assert.False(t, tr.Eligible("google"))
}

func TestTracker_ProbeSuccessClosesCircuit(t *testing.T) {
	tr, err := provider.NewTracker(3, 30*time.Second)
	require.NoError(t, err)
	tr.Register("google", 3)

	now := time.Now()
	tr.SetNowFunc(func() time.Time { return now })
	for i := 0; i < 3; i++ {
		tr.ReportFailure("google")
	}

	tr.SetNowFunc(func() time.Time { return now.Add(31 * time.Second) })
	require.True(t, tr.Eligible("google"))

	tr.ReportSuccess("google", 80*time.Millisecond)

	assert.True(t, tr.Eligible("google"))
	assert.True(t, tr.Eligible("google"), "closed circuit has no probe limit")
	snap := tr.Snapshot()
	assert.True(t, snap[0].Healthy)
	assert.Zero(t, snap[0].ConsecutiveFailures)
}

func TestTracker_ReleaseProbeReturnsSlot(t *testing.T) {
	tr, err := provider.NewTracker(3, 30*time.Second)
	require.NoError(t, err)
	tr.Register("google", 3)

	now := time.Now()
	tr.SetNowFunc(func() time.Time { return now })
	for i := 0; i < 3; i++ {
		tr.ReportFailure("google")
	}

	tr.SetNowFunc(func() time.Time { return now.Add(31 * time.Second) })
	require.True(t, tr.Eligible("google"))
	require.False(t, tr.Eligible("google"))

	// A probe abandoned without an outcome must not strand the provider.
	tr.ReleaseProbe("google")
	assert.True(t, tr.Eligible("google"))
}

func TestTracker_RateLimitCooldown(t *testing.T) {
	tr := newTracker(t)
	tr.Register("anthropic", 1)

	now := time.Now()
	tr.SetNowFunc(func() time.Time { return now })

	tr.StartCooldown("anthropic", time.Minute)
	assert.False(t, tr.Eligible("anthropic"), "cooldown excludes a healthy provider")

	snap := tr.Snapshot()
	require.NotNil(t, snap[0].CooldownUntil)
	assert.True(t, snap[0].Healthy, "cooldown is independent of the failure counter")

	tr.SetNowFunc(func() time.Time { return now.Add(61 * time.Second) })
	assert.True(t, tr.Eligible("anthropic"))
}

func TestTracker_SuccessRateBounds(t *testing.T) {
	tr := newTracker(t)
	tr.Register("p", 1)

	// Rate is seeded at 1.0 and must stay capped there.
	tr.ReportSuccess("p", time.Millisecond)
	assert.InDelta(t, 1.0, tr.Snapshot()[0].SuccessRate, 1e-9)

	// Decay floors at zero.
	for i := 0; i < 30; i++ {
		tr.ReportFailure("p")
	}
	assert.InDelta(t, 0.0, tr.Snapshot()[0].SuccessRate, 1e-9)

	// Each success nudges up by 0.01.
	tr.ReportSuccess("p", time.Millisecond)
	assert.InDelta(t, 0.01, tr.Snapshot()[0].SuccessRate, 1e-9)
}

func TestTracker_LatencyBlending(t *testing.T) {
	tr := newTracker(t)
	tr.Register("p", 1)

	tr.ReportSuccess("p", 100*time.Millisecond)
	assert.Equal(t, int64(100), tr.Snapshot()[0].AvgResponseTimeMS, "first sample seeds the average")

	tr.ReportSuccess("p", 200*time.Millisecond)
	got := tr.Snapshot()[0].AvgResponseTimeMS
	assert.Greater(t, got, int64(100))
	assert.Less(t, got, int64(200))
}

func TestTracker_SnapshotOrderedByPriority(t *testing.T) {
	tr := newTracker(t)
	tr.Register("google", 3)
	tr.Register("anthropic", 1)
	tr.Register("openai", 2)

	snap := tr.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "anthropic", snap[0].Name)
	assert.Equal(t, "openai", snap[1].Name)
	assert.Equal(t, "google", snap[2].Name)
}

func TestTracker_InvalidConstruction(t *testing.T) {
	_, err := provider.NewTracker(0, time.Second)
	assert.Error(t, err)

	_, err = provider.NewTracker(3, 0)
	assert.Error(t, err)
}

// Run with -race: concurrent reports from racing provider tasks must not
// corrupt counters.
func TestTracker_ConcurrentReports(t *testing.T) {
	tr := newTracker(t)
	tr.Register("p", 1)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 200; j++ {
				tr.ReportFailure("p")
				tr.ReportSuccess("p", time.Millisecond)
				_ = tr.Eligible("p")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	snap := tr.Snapshot()
	require.Len(t, snap, 1)
	assert.GreaterOrEqual(t, snap[0].SuccessRate, 0.0)
	assert.LessOrEqual(t, snap[0].SuccessRate, 1.0)
}

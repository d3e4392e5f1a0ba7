// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package provider

import (
	"sort"
	"sync"
	"time"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/prashant-zo/IntelliCommit/pkg/health"
)

const (
	// DefaultFailureThreshold is the consecutive-failure count that trips
	// a provider's circuit open.
	DefaultFailureThreshold = 3

	// DefaultRecoveryWindow is how long a tripped circuit stays fully open
	// before the provider is re-admitted for a single half-open probe.
	DefaultRecoveryWindow = 30 * time.Second

	successRateSeed  = 1.0
	successRateNudge = 0.01
	successRateDecay = 0.05
	latencySmoothing = 0.3
)

// providerState is the mutable per-provider health record. All access goes
// through the Tracker's mutex.
type providerState struct {
	priority            int
	healthy             bool
	probing             bool
	consecutiveFailures int
	successRate         float64
	avgResponseTime     time.Duration
	lastSuccess         time.Time
	cooldownUntil       time.Time
	trippedAt           time.Time
}

// Tracker holds health and circuit-breaker state for every registered
// provider. It lives for the whole process and is written concurrently by
// racing provider tasks, so every method takes the internal mutex.
//
// A success resets the failure counter and closes the circuit. Reaching
// the failure threshold opens it. A tripped circuit re-admits the provider
// for a single half-open probe once the recovery window elapses; only a
// probe success closes it again, a probe failure restarts the window, and
// an abandoned probe must be returned via ReleaseProbe. Rate-limit
// cooldowns are tracked separately from the failure counter.
type Tracker struct {
	mu               sync.Mutex
	providers        map[string]*providerState
	failureThreshold int
	recoveryWindow   time.Duration
	nowFunc          func() time.Time // for testing
}

// NewTracker creates a Tracker. Returns an error if threshold or recovery
// window is not positive.
func NewTracker(failureThreshold int, recoveryWindow time.Duration) (*Tracker, error) {
	if failureThreshold <= 0 {
		return nil, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
			"failure threshold must be positive, got %d", failureThreshold)
	}
	if recoveryWindow <= 0 {
		return nil, icerr.Errorf(icerr.CodeConfigValidateInvalidValue,
			"recovery window must be positive, got %s", recoveryWindow)
	}
	return &Tracker{
		providers:        make(map[string]*providerState),
		failureThreshold: failureThreshold,
		recoveryWindow:   recoveryWindow,
		nowFunc:          time.Now,
	}, nil
}

// Register seeds state for a provider. Registering an existing name only
// updates its priority.
func (t *Tracker) Register(name string, priority int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.providers[name]; ok {
		s.priority = priority
		return
	}
	t.providers[name] = &providerState{
		priority:    priority,
		healthy:     true,
		successRate: successRateSeed,
	}
}

// Eligible reports whether a provider may participate in the next race:
// not in a cooldown window, and either circuit-closed with headroom on the
// failure counter, or circuit-open but past the recovery window. In the
// latter case Eligible claims the single half-open probe slot, so a second
// call returns false until a report lands or ReleaseProbe is called.
// Unknown names are never eligible.
func (t *Tracker) Eligible(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.providers[name]
	if !ok {
		return false
	}

	now := t.nowFunc()
	if now.Before(s.cooldownUntil) {
		return false
	}
	if s.healthy && s.consecutiveFailures < t.failureThreshold {
		return true
	}
	if s.probing || s.trippedAt.IsZero() || now.Before(s.trippedAt.Add(t.recoveryWindow)) {
		return false
	}
	s.probing = true
	return true
}

// ReleaseProbe returns an unused half-open probe slot, e.g. when the probe
// attempt was cancelled before producing an outcome. Counters are left
// untouched.
func (t *Tracker) ReleaseProbe(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.providers[name]; ok {
		s.probing = false
	}
}

// ReportSuccess resets the failure counter, closes the circuit, records
// the success time, blends the latency into the moving average, and nudges
// the success rate up.
func (t *Tracker) ReportSuccess(name string, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.providers[name]
	if !ok {
		return
	}

	s.consecutiveFailures = 0
	s.healthy = true
	s.probing = false
	s.trippedAt = time.Time{}
	s.lastSuccess = t.nowFunc()

	if s.avgResponseTime == 0 {
		s.avgResponseTime = latency
	} else {
		s.avgResponseTime = time.Duration(
			float64(s.avgResponseTime)*(1-latencySmoothing) + float64(latency)*latencySmoothing)
	}

	s.successRate += successRateNudge
	if s.successRate > 1 {
		s.successRate = 1
	}
}

// ReportFailure increments the failure counter and decays the success
// rate. Reaching the threshold trips the circuit open and starts the
// recovery window.
func (t *Tracker) ReportFailure(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.providers[name]
	if !ok {
		return
	}

	s.consecutiveFailures++
	s.probing = false
	s.successRate -= successRateDecay
	if s.successRate < 0 {
		s.successRate = 0
	}

	if s.consecutiveFailures >= t.failureThreshold {
		s.healthy = false
		s.trippedAt = t.nowFunc()
	}
}

// StartCooldown excludes a provider from races until the window elapses,
// independent of the failure counter. Used for rate-limit responses.
func (t *Tracker) StartCooldown(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.providers[name]
	if !ok {
		return
	}
	s.cooldownUntil = t.nowFunc().Add(d)
}

// SetNowFunc overrides the time source (for testing).
func (t *Tracker) SetNowFunc(fn func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nowFunc = fn
}

// Snapshot returns point-in-time metrics for every registered provider,
// ordered by priority then name.
func (t *Tracker) Snapshot() []health.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.nowFunc()
	out := make([]health.Metrics, 0, len(t.providers))
	for name, s := range t.providers {
		m := health.Metrics{
			Name:                name,
			Priority:            s.priority,
			Healthy:             s.healthy,
			ConsecutiveFailures: s.consecutiveFailures,
			SuccessRate:         s.successRate,
			AvgResponseTimeMS:   s.avgResponseTime.Milliseconds(),
		}
		m.Eligible = t.eligibleLocked(s, now)
		if !s.lastSuccess.IsZero() {
			ts := s.lastSuccess
			m.LastSuccessAt = &ts
		}
		if now.Before(s.cooldownUntil) {
			cd := s.cooldownUntil
			m.CooldownUntil = &cd
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// eligibleLocked mirrors Eligible's read side for callers already holding
// t.mu. Unlike Eligible it never claims the probe slot.
func (t *Tracker) eligibleLocked(s *providerState, now time.Time) bool {
	if now.Before(s.cooldownUntil) {
		return false
	}
	if s.healthy && s.consecutiveFailures < t.failureThreshold {
		return true
	}
	return !s.probing && !s.trippedAt.IsZero() && !now.Before(s.trippedAt.Add(t.recoveryWindow))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package health defines the serializable snapshot of per-provider health
// state exposed for monitoring and operator visibility.
package health

import "time"

// Metrics is a point-in-time snapshot of one provider's health state.
// All fields are copies and safe to serialize to JSON.
type Metrics struct {
	Name                string     `json:"name"`
	Priority            int        `json:"priority"`
	Healthy             bool       `json:"healthy"`
	Eligible            bool       `json:"eligible"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	SuccessRate         float64    `json:"success_rate"`
	AvgResponseTimeMS   int64      `json:"avg_response_time_ms"`
	LastSuccessAt       *time.Time `json:"last_success_at,omitempty"`
	CooldownUntil       *time.Time `json:"cooldown_until,omitempty"`
}

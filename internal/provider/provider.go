// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package provider defines the contract for external text-generation
// providers plus the process-wide health tracking and registry shared by
// the orchestration engine.
package provider

import "context"

// Provider is an external text-generation capability. Implementations wrap
// one vendor SDK and expose a single blocking call: submit a prompt,
// receive text or fail. The per-call deadline arrives via ctx.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/prashant-zo/IntelliCommit/internal/analyze"
	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
	"github.com/prashant-zo/IntelliCommit/pkg/health"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"system"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "generate-commit-message",
		Method:      http.MethodPost,
		Path:        "/v1/commit-message",
		Summary:     "Generate a commit message from a git diff",
		Tags:        []string{"generation"},
	}, s.handleGenerate)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-providers",
		Method:      http.MethodGet,
		Path:        "/v1/providers",
		Summary:     "Provider health and eligibility",
		Tags:        []string{"providers"},
	}, s.handleProviders)
}

// --- Request/Response types for huma ---

type healthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Health status"`
	}
}

type generateInput struct {
	Body struct {
		Diff string `json:"diff" minLength:"1" doc:"Raw git diff to describe"`
	}
}

type generateOutput struct {
	Body struct {
		RequestID string           `json:"request_id" doc:"Server-assigned request ID"`
		Message   string           `json:"message" doc:"Generated commit message"`
		Provider  string           `json:"provider" doc:"Source of the message: a provider name, cache, or local"`
		Cached    bool             `json:"cached" doc:"Whether the message came from the cache"`
		Analysis  analyze.Analysis `json:"analysis" doc:"Deterministic diff analysis"`
	}
}

type providersOutput struct {
	Body struct {
		Providers []health.Metrics `json:"providers"`
	}
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*healthOutput, error) {
	out := &healthOutput{}
	out.Body.Status = "ok"
	return out, nil
}

// handleGenerate runs the generation pipeline. Provider failures never
// surface here: the engine guarantees a message via the local generator,
// so the only client-visible error is an invalid diff.
func (s *Server) handleGenerate(ctx context.Context, input *generateInput) (*generateOutput, error) {
	res, err := s.engine.Generate(ctx, input.Body.Diff)
	if err != nil {
		return nil, huma.NewError(icerr.HTTPStatus(err), err.Error())
	}

	out := &generateOutput{}
	out.Body.RequestID = res.RequestID
	out.Body.Message = res.Message
	out.Body.Provider = res.Provider
	out.Body.Cached = res.Cached
	out.Body.Analysis = res.Analysis
	return out, nil
}

func (s *Server) handleProviders(_ context.Context, _ *struct{}) (*providersOutput, error) {
	out := &providersOutput{}
	out.Body.Providers = s.engine.Tracker().Snapshot()
	return out, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package google adapts the Google Gemini API to the provider contract.
// Gemini calls can hit cold starts, so callers should configure a longer
// per-call timeout than for the other providers.
package google

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// DefaultModel is used when config does not name one.
const DefaultModel = "gemini-2.5-flash"

const maxOutputTokens = 512

// Config holds Google provider configuration.
type Config struct {
	APIKey string
	Model  string
}

// Provider implements provider.Provider using the Google Gemini API.
type Provider struct {
	client *genai.Client
	config Config
}

// New creates a new Google provider. Returns an error if the API key is missing.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, icerr.New(icerr.CodeProviderNotConfigured,
			"google: missing api_key in config", icerr.FieldProvider("google"))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, icerr.Wrapf(err, icerr.CodeProviderRejected, "google: creating client")
	}

	return &Provider{client: client, config: cfg}, nil
}

func (p *Provider) Name() string { return "google" }

// Generate submits the prompt and returns the concatenated text parts of
// the first candidate.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", classify(err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			b.WriteString(part.Text)
		}
		break
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", icerr.New(icerr.CodeProviderMalformed,
			"google: response contained no text", icerr.FieldProvider("google"))
	}
	return text, nil
}

func (p *Provider) Close() error { return nil }

// classify maps SDK errors onto the shared provider error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return icerr.Wrapf(err, icerr.CodeProviderTimeout, "google: call timed out")
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return icerr.Wrapf(err, icerr.CodeProviderRateLimited, "google: rate limited")
	}

	return icerr.Wrapf(err, icerr.CodeProviderRejected, "google: request rejected")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package anthropic adapts the Anthropic Messages API to the provider
// contract: submit a prompt, receive commit message text or fail.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// DefaultModel is used when config does not name one.
const DefaultModel = "claude-haiku-4-5"

// maxOutputTokens bounds the response; commit messages are short.
const maxOutputTokens = 512

// Config holds Anthropic provider configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, useful for testing against a mock server
}

// Provider implements provider.Provider using the Anthropic Messages API.
type Provider struct {
	client anthropicsdk.Client
	config Config
}

// New creates a new Anthropic provider. Returns an error if the API key is missing.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, icerr.New(icerr.CodeProviderNotConfigured,
			"anthropic: missing api_key in config", icerr.FieldProvider("anthropic"))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Provider{client: anthropicsdk.NewClient(opts...), config: cfg}, nil
}

func (p *Provider) Name() string { return "anthropic" }

// Generate submits the prompt as a single user message and returns the
// concatenated text blocks of the response.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(p.config.Model),
		MaxTokens: maxOutputTokens,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classify(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", icerr.New(icerr.CodeProviderMalformed,
			"anthropic: response contained no text", icerr.FieldProvider("anthropic"))
	}
	return text, nil
}

func (p *Provider) Close() error { return nil }

// classify maps SDK errors onto the shared provider error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return icerr.Wrapf(err, icerr.CodeProviderTimeout, "anthropic: call timed out")
	}

	var apiErr *anthropicsdk.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return icerr.Wrapf(err, icerr.CodeProviderRateLimited, "anthropic: rate limited")
	}

	return icerr.Wrapf(err, icerr.CodeProviderRejected, "anthropic: request rejected")
}

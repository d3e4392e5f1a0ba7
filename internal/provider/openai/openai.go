// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 IntelliCommit Contributors

// Package openai adapts the OpenAI Chat Completions API to the provider
// contract.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	icerr "github.com/prashant-zo/IntelliCommit/pkg/errors"
)

// DefaultModel is used when config does not name one.
const DefaultModel = "gpt-4.1-mini"

const maxOutputTokens = 512

// Config holds OpenAI provider configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, useful for testing against a mock server
}

// Provider implements provider.Provider using the OpenAI Chat Completions API.
type Provider struct {
	client openaisdk.Client
	config Config
}

// New creates a new OpenAI provider. Returns an error if the API key is missing.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, icerr.New(icerr.CodeProviderNotConfigured,
			"openai: missing api_key in config", icerr.FieldProvider("openai"))
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

	return &Provider{client: openaisdk.NewClient(opts...), config: cfg}, nil
}

func (p *Provider) Name() string { return "openai" }

// Generate submits the prompt as a single user message and returns the
// first choice's content.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(p.config.Model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		MaxCompletionTokens: param.NewOpt(int64(maxOutputTokens)),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", icerr.New(icerr.CodeProviderMalformed,
			"openai: response contained no choices", icerr.FieldProvider("openai"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", icerr.New(icerr.CodeProviderMalformed,
			"openai: response contained no text", icerr.FieldProvider("openai"))
	}
	return text, nil
}

func (p *Provider) Close() error { return nil }

// classify maps SDK errors onto the shared provider error taxonomy.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return icerr.Wrapf(err, icerr.CodeProviderTimeout, "openai: call timed out")
	}

	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return icerr.Wrapf(err, icerr.CodeProviderRateLimited, "openai: rate limited")
	}

	return icerr.Wrapf(err, icerr.CodeProviderRejected, "openai: request rejected")
}

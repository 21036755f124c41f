// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Backend abstracts the text-generation API so tests can supply a mock.
// Complete sends one prompt and returns the raw response text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4"
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// NewBackend builds the backend selected by cfg.Provider. An empty provider
// selects OpenAI. A missing API key is an error.
func NewBackend(cfg types.AIConfig, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key for provider %q: set it in .secrets/, .env, or the environment", providerOrDefault(cfg.Provider))
	}

	switch providerOrDefault(cfg.Provider) {
	case types.ProviderOpenAI:
		return NewOpenAIBackend(cfg, client), nil
	case types.ProviderAnthropic:
		model := cfg.Model
		if model == "" {
			model = DefaultAnthropicModel
		}
		return &ClaudeBackend{APIKey: cfg.APIKey, Model: model, BaseURL: cfg.BaseURL, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: use openai or anthropic", cfg.Provider)
	}
}

func providerOrDefault(p types.AIProvider) types.AIProvider {
	if p == "" {
		return types.ProviderOpenAI
	}
	return p
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/secrets"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultDelay      = 1 * time.Second
	defaultUserAgent  = "paper-analyzer/0.1"
	defaultMaxResults = 5
)

// bindFlags binds the named flags of cmd to viper keys. Commands bind at run
// time because several of them share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", flag, err)
		}
	}
	return nil
}

// addAIFlags registers the text-generation flags shared by analyze and search.
func addAIFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "openai", "text-generation API: openai or anthropic")
	cmd.Flags().String("model", "", "model identifier (default gpt-4 for openai, claude-sonnet-4-5 for anthropic)")
	cmd.Flags().String("base-url", "", "override the API endpoint")
	cmd.Flags().Int("max-retries", 3, "retries for failed API calls")
	cmd.Flags().String("focus", "", "research area to focus the analysis on")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
}

var aiFlagKeys = map[string]string{
	"ai.provider":    "provider",
	"ai.model":       "model",
	"ai.base_url":    "base-url",
	"ai.max_retries": "max-retries",
	"analysis.focus": "focus",
	"http.timeout":   "timeout",
}

// analysisConfig assembles the analysis settings from viper and the loaded secrets.
func analysisConfig() types.AnalysisConfig {
	provider := types.AIProvider(viper.GetString("ai.provider"))
	key := secrets.OpenAIKey
	if provider == types.ProviderAnthropic {
		key = secrets.AnthropicKey
	}

	return types.AnalysisConfig{
		AIConfig: types.AIConfig{
			Provider:   provider,
			Model:      viper.GetString("ai.model"),
			APIKey:     loadedSecrets.Resolve(key),
			BaseURL:    viper.GetString("ai.base_url"),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		Focus: viper.GetString("analysis.focus"),
	}
}

// httpConfig returns the shared HTTP settings.
func httpConfig() types.HTTPConfig {
	timeout := viper.GetDuration("http.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
}

// newAnalyzer builds an Analyzer for cfg on client.
func newAnalyzer(cfg types.AnalysisConfig, client *http.Client) (*analyze.Analyzer, error) {
	backend, err := analyze.NewBackend(cfg.AIConfig, client)
	if err != nil {
		return nil, err
	}
	return analyze.NewAnalyzer(backend, cfg, logger), nil
}

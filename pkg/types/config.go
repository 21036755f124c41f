// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIProvider identifies the text-generation API behind an analysis.
type AIProvider string

const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
)

// AIConfig holds settings for the text-generation backend.
type AIConfig struct {
	// Provider selects the API: openai (default) or anthropic.
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint. Empty uses the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AnalysisConfig holds settings for title and abstract analysis.
type AnalysisConfig struct {
	AIConfig `yaml:",inline"`

	// Focus narrows the analysis to a research area
	// (e.g. "AI in mental health therapy"). Empty means no focus.
	Focus string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableArxiv controls whether the arXiv backend is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// EnableSemanticScholar controls whether the Semantic Scholar backend is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// RequestsPerSecond caps the Semantic Scholar request rate (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// InterBackendDelay is the delay between API calls to different backends (default 1s).
	InterBackendDelay time.Duration `json:"inter_backend_delay" yaml:"inter_backend_delay"`
}

// ExportConfig holds settings for the tabular export.
type ExportConfig struct {
	// Path is the destination file. The extension selects the format:
	// .xlsx, .json, .yaml or .yml.
	Path string `json:"path" yaml:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Export   ExportConfig   `json:"export" yaml:"export"`
}

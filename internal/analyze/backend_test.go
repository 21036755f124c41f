// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.AIConfig
		want    any
		wantErr string
	}{
		{
			name: "default provider is openai",
			cfg:  types.AIConfig{APIKey: "k"},
			want: &OpenAIBackend{},
		},
		{
			name: "anthropic",
			cfg:  types.AIConfig{Provider: types.ProviderAnthropic, APIKey: "k"},
			want: &ClaudeBackend{},
		},
		{
			name:    "missing key",
			cfg:     types.AIConfig{Provider: types.ProviderAnthropic},
			wantErr: "no API key",
		},
		{
			name:    "unknown provider",
			cfg:     types.AIConfig{Provider: "gemini", APIKey: "k"},
			wantErr: "unknown AI provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.cfg, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}
}

func TestNewBackendDefaultModels(t *testing.T) {
	b, err := NewBackend(types.AIConfig{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, b.(*OpenAIBackend).Model)

	b, err = NewBackend(types.AIConfig{Provider: types.ProviderAnthropic, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, b.(*ClaudeBackend).Model)

	b, err = NewBackend(types.AIConfig{Provider: types.ProviderAnthropic, APIKey: "k", Model: "custom"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", b.(*ClaudeBackend).Model)
}

// --- OpenAI ---

func TestOpenAIBackendComplete(t *testing.T) {
	var lastPath string
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1",
			"object":"chat.completion",
			"created":1730366400,
			"model":"gpt-4",
			"choices":[
				{
					"index":0,
					"finish_reason":"stop",
					"logprobs":null,
					"message":{"role":"assistant","content":"Summary: It works."}
				}
			],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}
		}`))
	}))
	defer server.Close()

	b := NewOpenAIBackend(types.AIConfig{APIKey: "test-key", BaseURL: server.URL}, server.Client())

	out, err := b.Complete(context.Background(), "Analyze this")
	require.NoError(t, err)
	assert.Equal(t, "Summary: It works.", out)
	assert.Equal(t, "/chat/completions", lastPath)
	assert.Equal(t, "gpt-4", payload["model"])

	msgs, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Analyze this", msg["content"])
}

func TestOpenAIBackendNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"gpt-4","choices":[]}`))
	}))
	defer server.Close()

	b := NewOpenAIBackend(types.AIConfig{APIKey: "k", BaseURL: server.URL}, server.Client())
	_, err := b.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIBackendHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	b := NewOpenAIBackend(types.AIConfig{APIKey: "k", BaseURL: server.URL}, server.Client())
	_, err := b.Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling OpenAI API")
}

// --- Claude ---

func TestClaudeBackendComplete(t *testing.T) {
	var gotReq claudeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Summary: one"},{"type":"text","text":"Methodology: two"}]}`))
	}))
	defer server.Close()

	b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", BaseURL: server.URL}
	out, err := b.Complete(context.Background(), "Analyze")
	require.NoError(t, err)
	assert.Equal(t, "Summary: one\nMethodology: two", out)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "Analyze", gotReq.Messages[0].Content)
}

func TestClaudeBackendDefaultURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer server.Close()

	orig := claudeAPIURL
	claudeAPIURL = server.URL
	defer func() { claudeAPIURL = orig }()

	b := &ClaudeBackend{APIKey: "k", Model: "m"}
	out, err := b.Complete(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestClaudeBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":"slow down"}`, "returned 429"},
		{"no text", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, "no text content"},
		{"bad json", http.StatusOK, `not json`, "decoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			b := &ClaudeBackend{APIKey: "k", Model: "m", BaseURL: server.URL}
			_, err := b.Complete(context.Background(), "x")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should contain %q", err, tt.wantErr)
		})
	}
}

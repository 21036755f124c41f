// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	name    string
	results []types.SearchResult
	err     error
	calls   int
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Search(_ context.Context, _ Query, _ types.SearchConfig) ([]types.SearchResult, error) {
	m.calls++
	return m.results, m.err
}

// orderBackend records the order in which backends run.
type orderBackend struct {
	name  string
	order *[]string
}

func (o *orderBackend) Name() string { return o.name }

func (o *orderBackend) Search(_ context.Context, _ Query, _ types.SearchConfig) ([]types.SearchResult, error) {
	*o.order = append(*o.order, o.name)
	return nil, nil
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 20,
	}
}

func TestQueryIsEmpty(t *testing.T) {
	assert.True(t, Query{}.IsEmpty())
	assert.True(t, Query{FreeText: "   ", YearFrom: 2020}.IsEmpty())
	assert.False(t, Query{FreeText: "ai therapy"}.IsEmpty())
	assert.False(t, Query{Author: "Beck"}.IsEmpty())
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := Search(context.Background(), Query{}, []Backend{&mockBackend{name: "a"}}, testCfg(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "query is empty")
}

func TestSearchNoBackends(t *testing.T) {
	_, err := Search(context.Background(), Query{FreeText: "x"}, nil, testCfg(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "no search backends")
}

func TestSearchRunsBackendsInOrder(t *testing.T) {
	var order []string
	backends := []Backend{
		&orderBackend{name: "first", order: &order},
		&orderBackend{name: "second", order: &order},
		&orderBackend{name: "third", order: &order},
	}

	_, err := Search(context.Background(), Query{FreeText: "x"}, backends, testCfg(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSearchContinuesAfterBackendFailure(t *testing.T) {
	failing := &mockBackend{name: "broken", err: errors.New("boom")}
	working := &mockBackend{name: "ok", results: []types.SearchResult{
		{Identifier: "1", Title: "Paper One", RelevanceScore: 0.5},
	}}

	var w bytes.Buffer
	out, err := Search(context.Background(), Query{FreeText: "x"}, []Backend{failing, working}, testCfg(), &w)
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.Equal(t, []string{"broken: boom"}, out.BackendErrors)
	assert.Contains(t, w.String(), "warning: backend broken failed: boom")
	assert.Equal(t, 1, working.calls)
}

func TestSearchDedupAndRank(t *testing.T) {
	a := &mockBackend{name: "arxiv", results: []types.SearchResult{
		{Identifier: "2301.07041", Title: "Attention Is All You Need", Source: "arxiv", RelevanceScore: 0.6},
		{Identifier: "2302.00001", Title: "Second Paper", Source: "arxiv", RelevanceScore: 0.9},
	}}
	s := &mockBackend{name: "semantic_scholar", results: []types.SearchResult{
		{Identifier: "2301.07041", Title: "Attention is all you need", Source: "semantic_scholar",
			Venue: "NeurIPS", RelevanceScore: 0.8},
		{Identifier: "abc", Title: "Second  Paper!", Source: "semantic_scholar", RelevanceScore: 0.1},
	}}

	out, err := Search(context.Background(), Query{FreeText: "attention"}, []Backend{a, s}, testCfg(), &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, out.Results, 2)
	assert.Equal(t, 2, out.DupsRemoved)
	assert.Equal(t, "2302.00001", out.Results[0].Identifier)
	assert.Equal(t, "2301.07041", out.Results[1].Identifier)
	assert.InDelta(t, 0.8, out.Results[1].RelevanceScore, 1e-9)
	assert.Equal(t, "NeurIPS", out.Results[1].Venue)
	assert.Equal(t, "arxiv,semantic_scholar", out.Results[1].Source)
}

func TestSearchMaxResults(t *testing.T) {
	var results []types.SearchResult
	for i := 0; i < 10; i++ {
		results = append(results, types.SearchResult{
			Identifier:     string(rune('a' + i)),
			Title:          "Paper " + string(rune('A'+i)),
			RelevanceScore: float64(i) / 10,
		})
	}
	cfg := testCfg()
	cfg.MaxResults = 3

	out, err := Search(context.Background(), Query{FreeText: "x"}, []Backend{&mockBackend{name: "m", results: results}}, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, out.Results, 3)
	assert.Equal(t, "j", out.Results[0].Identifier)
}

func TestSearchContextCancelledBetweenBackends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testCfg()
	cfg.InterBackendDelay = time.Hour

	second := &mockBackend{name: "second"}
	_, err := Search(ctx, Query{FreeText: "x"}, []Backend{&mockBackend{name: "first"}, second}, cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, second.calls)
}

func TestDeduplicateByDOI(t *testing.T) {
	in := []types.SearchResult{
		{Identifier: "s2-1", DOI: "10.1/ABC", Title: "One"},
		{Identifier: "s2-2", DOI: "10.1/abc", Title: "One (preprint)", URL: "https://example.org"},
	}
	out, removed := deduplicate(in)
	require.Len(t, out, 1)
	assert.Equal(t, 1, removed)
	assert.Equal(t, "https://example.org", out[0].URL)
}

func TestDeduplicateNoDuplicates(t *testing.T) {
	in := []types.SearchResult{{Identifier: "1", Title: "A"}, {Identifier: "2", Title: "B"}}
	out, removed := deduplicate(in)
	assert.Len(t, out, 2)
	assert.Zero(t, removed)
}

func TestNormalizeTitle(t *testing.T) {
	tests := map[string]string{
		"Attention Is All You Need":    "attention is all you need",
		"  BERT: Pre-training  of... ": "bert pretraining of",
		"":                             "",
		"!!!":                          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeTitle(in), in)
	}
}

func TestPositionScore(t *testing.T) {
	assert.InDelta(t, 1.0, positionScore(0, 1), 1e-9)
	assert.InDelta(t, 1.0, positionScore(0, 5), 1e-9)
	assert.InDelta(t, 0.1, positionScore(4, 5), 1e-9)
	assert.InDelta(t, 0.55, positionScore(2, 5), 1e-9)
}

func TestFormatTable(t *testing.T) {
	out := Output{
		Results: []types.SearchResult{
			{Title: "A Very Long Title That Goes On And On And On Beyond Sixty Characters Wide",
				Authors: []string{"Jane Doe", "Alice Lee"}, Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				RelevanceScore: 0.75, Source: "arxiv"},
		},
		DupsRemoved: 2,
	}

	var w bytes.Buffer
	FormatTable(out, &w)
	s := w.String()

	assert.Contains(t, s, "Rank")
	assert.Contains(t, s, "...")
	assert.Contains(t, s, "Jane Doe et al.")
	assert.Contains(t, s, "2021")
	assert.Contains(t, s, "0.75")
	assert.Contains(t, s, "1 results (2 duplicates removed)")
}

func TestFormatTableEmpty(t *testing.T) {
	var w bytes.Buffer
	FormatTable(Output{}, &w)
	assert.Equal(t, "No results found.\n", w.String())
}

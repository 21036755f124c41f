// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze asks a text-generation backend about papers and turns the
// answers into records. Title analysis produces a PaperAnalysis; search hit
// analysis adds key points and limitations to a ScholarPaper.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/paper-analyzer/internal/extract"
	"github.com/pdiddy/paper-analyzer/internal/search"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ErrEmptyTitle is returned when a title analysis is requested for a blank title.
var ErrEmptyTitle = errors.New("title is empty")

const defaultMaxRetries = 3

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Analyzer drives analyses through an injected Backend.
type Analyzer struct {
	Backend Backend

	// MaxRetries is the number of retries after a failed call (default 3).
	MaxRetries int

	// Focus narrows title analyses to a research area. Empty means none.
	Focus string

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// NewAnalyzer returns an Analyzer configured from cfg.
func NewAnalyzer(backend Backend, cfg types.AnalysisConfig, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		Backend:    backend,
		MaxRetries: cfg.MaxRetries,
		Focus:      cfg.Focus,
		Logger:     logger,
	}
}

// Analysis pairs an extracted record with the raw response it came from.
type Analysis struct {
	Record types.PaperAnalysis
	Raw    string
}

// BatchSummary holds counts from a batch run.
type BatchSummary struct {
	Analyzed   int
	Incomplete int
	Failed     int
}

// Total returns the number of items processed.
func (s BatchSummary) Total() int {
	return s.Analyzed + s.Incomplete + s.Failed
}

// HasFailures reports whether any item failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// AnalyzeTitle asks the backend about title and extracts the response. Only
// a blank title or a backend failure after all retries is an error; missing
// sections leave their fields empty.
func (a *Analyzer) AnalyzeTitle(ctx context.Context, title string) (Analysis, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Analysis{}, ErrEmptyTitle
	}

	prompt, err := renderTitlePrompt(title, a.Focus)
	if err != nil {
		return Analysis{}, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyzing %q: %w", title, err)
	}

	rec := extract.Extract(title, raw)
	a.logger().Debug("title analyzed", "title", title, "raw_bytes", len(raw), "empty", rec.IsEmpty())
	return Analysis{Record: rec, Raw: raw}, nil
}

// AnalyzeTitles analyzes each title in order. Failed titles are reported on
// w and left out of the returned slice; records with no recognized section
// count as incomplete.
func (a *Analyzer) AnalyzeTitles(ctx context.Context, titles []string, w io.Writer) ([]Analysis, BatchSummary) {
	var out []Analysis
	var summary BatchSummary

	for _, title := range titles {
		fmt.Fprintf(w, "analyzing %q\n", title)

		res, err := a.AnalyzeTitle(ctx, title)
		if err != nil {
			fmt.Fprintf(w, "failed    %q: %v\n", title, err)
			summary.Failed++
			continue
		}

		if res.Record.IsEmpty() {
			fmt.Fprintf(w, "warning: no recognized sections in response for %q\n", title)
			summary.Incomplete++
		} else {
			summary.Analyzed++
		}
		out = append(out, res)
	}
	return out, summary
}

// AnalyzeResult asks the backend for key points and limitations of r based
// on its title and abstract. When the response has no Limitations label both
// lists stay empty and ok is false.
func (a *Analyzer) AnalyzeResult(ctx context.Context, r types.SearchResult) (paper types.ScholarPaper, ok bool, err error) {
	paper = PaperFromResult(r)

	prompt, err := renderAbstractPrompt(r.Title, r.Abstract)
	if err != nil {
		return paper, false, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := a.complete(ctx, prompt)
	if err != nil {
		return paper, false, fmt.Errorf("analyzing %q: %w", r.Title, err)
	}

	paper.KeyPoints, paper.Limitations, ok = extract.SplitFindings(raw)
	if !ok {
		a.logger().Warn("response has no Limitations section", "title", r.Title)
	}
	return paper, ok, nil
}

// AnalyzeResults analyzes each search hit in order. Every hit yields a paper,
// so the output lines up with results; a failed analysis keeps the metadata
// with empty findings.
func (a *Analyzer) AnalyzeResults(ctx context.Context, results []types.SearchResult, w io.Writer) ([]types.ScholarPaper, BatchSummary) {
	papers := make([]types.ScholarPaper, 0, len(results))
	var summary BatchSummary

	for _, r := range results {
		fmt.Fprintf(w, "analyzing %q\n", r.Title)

		paper, ok, err := a.AnalyzeResult(ctx, r)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed    %q: %v\n", r.Title, err)
			summary.Failed++
		case !ok:
			fmt.Fprintf(w, "warning: could not split findings for %q\n", r.Title)
			summary.Incomplete++
		default:
			summary.Analyzed++
		}
		papers = append(papers, paper)
	}
	return papers, summary
}

// PaperFromResult converts a search hit into a ScholarPaper without findings.
func PaperFromResult(r types.SearchResult) types.ScholarPaper {
	authors := r.Authors
	if authors == nil {
		authors = []string{}
	}
	return types.ScholarPaper{
		Title:       r.Title,
		Authors:     authors,
		Year:        r.Year(),
		URL:         r.URL,
		KeyPoints:   []string{},
		Limitations: []string{},
		BibTeX:      search.BibTeX(r),
	}
}

// complete calls the backend with exponential backoff.
func (a *Analyzer) complete(ctx context.Context, prompt string) (string, error) {
	if a.Backend == nil {
		return "", errors.New("no text-generation backend configured")
	}
	maxRetries := a.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			a.logger().Debug("retrying backend call", "attempt", attempt, "backoff", backoff, "error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		raw, err := a.Backend.Complete(ctx, prompt)
		if err == nil {
			a.logger().Debug("backend response", "prompt_bytes", len(prompt), "response", raw)
			return raw, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

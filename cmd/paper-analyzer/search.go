// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-analyzer/internal/analyze"
	"github.com/pdiddy/paper-analyzer/internal/export"
	"github.com/pdiddy/paper-analyzer/internal/search"
	"github.com/pdiddy/paper-analyzer/internal/secrets"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search academic APIs and summarize each paper",
	Long: `Search queries Semantic Scholar and arXiv for papers matching a topic,
deduplicates and ranks the hits, and asks a text-generation API for the key
points and limitations of each paper based on its title and abstract.

Each paper is exported with its year, URL, and a BibTeX entry to --output.`,
	RunE: runSearch,
}

func init() {
	addAIFlags(searchCmd)
	searchCmd.Flags().StringP("query", "q", "", "free-text research topic")
	searchCmd.Flags().String("author", "", "filter by author name")
	searchCmd.Flags().Int("from", 0, "earliest publication year")
	searchCmd.Flags().Int("to", 0, "latest publication year")
	searchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of papers")
	searchCmd.Flags().Bool("no-analysis", false, "skip the text-generation step and export metadata only")
	searchCmd.Flags().Bool("semantic-scholar", true, "query Semantic Scholar")
	searchCmd.Flags().Bool("arxiv", true, "query arXiv")
	searchCmd.Flags().Duration("delay", 0, "delay between backends (default 1s)")
	searchCmd.Flags().StringP("output", "o", "research_results.xlsx", "export file; empty disables export")
	searchCmd.Flags().Bool("json", false, "print papers as JSON")

	rootCmd.AddCommand(searchCmd)
}

var searchFlagKeys = map[string]string{
	"search.max_results":      "max-results",
	"search.semantic_scholar": "semantic-scholar",
	"search.arxiv":            "arxiv",
	"search.delay":            "delay",
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, aiFlagKeys); err != nil {
		return err
	}
	if err := bindFlags(cmd, searchFlagKeys); err != nil {
		return err
	}

	freeText, _ := cmd.Flags().GetString("query")
	if freeText == "" && len(args) > 0 {
		freeText = args[0]
	}
	author, _ := cmd.Flags().GetString("author")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	noAnalysis, _ := cmd.Flags().GetBool("no-analysis")
	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")

	query := search.Query{FreeText: freeText, Author: author, YearFrom: from, YearTo: to}
	if query.IsEmpty() {
		return fmt.Errorf("provide a search topic with --query or an --author")
	}
	if output != "" {
		if _, err := export.FormatFor(output); err != nil {
			return err
		}
	}

	cfg := searchConfig()
	client := &http.Client{Timeout: cfg.Timeout}

	var analyzer *analyze.Analyzer
	if !noAnalysis {
		a, err := newAnalyzer(analysisConfig(), client)
		if err != nil {
			return err
		}
		analyzer = a
	}

	var backends []search.Backend
	if cfg.EnableSemanticScholar {
		backends = append(backends, search.NewSemanticScholarBackend(client, cfg.SemanticScholarAPIKey, cfg.RequestsPerSecond))
	}
	if cfg.EnableArxiv {
		backends = append(backends, &search.ArxivBackend{Client: client})
	}

	out, err := search.Search(cmd.Context(), query, backends, cfg, os.Stderr)
	if err != nil {
		return err
	}
	if !asJSON {
		search.FormatTable(out, os.Stdout)
	}

	var papers []types.ScholarPaper
	var summary analyze.BatchSummary
	if analyzer != nil {
		papers, summary = analyzer.AnalyzeResults(cmd.Context(), out.Results, os.Stderr)
	} else {
		for _, r := range out.Results {
			papers = append(papers, analyze.PaperFromResult(r))
		}
	}

	if asJSON {
		if papers == nil {
			papers = []types.ScholarPaper{}
		}
		if err := printJSON(os.Stdout, papers); err != nil {
			return err
		}
	} else if analyzer != nil {
		for _, p := range papers {
			printPaper(os.Stdout, p)
		}
	}

	if output != "" && len(papers) > 0 {
		if err := export.WritePapers(output, papers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d papers to %s\n", len(papers), output)
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed analysis", summary.Failed)
	}
	return nil
}

// searchConfig assembles the search settings from viper and the loaded secrets.
func searchConfig() types.SearchConfig {
	delay := viper.GetDuration("search.delay")
	if delay == 0 {
		delay = defaultDelay
	}
	maxResults := viper.GetInt("search.max_results")
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return types.SearchConfig{
		HTTPConfig:            httpConfig(),
		MaxResults:            maxResults,
		EnableSemanticScholar: viper.GetBool("search.semantic_scholar"),
		EnableArxiv:           viper.GetBool("search.arxiv"),
		SemanticScholarAPIKey: loadedSecrets.Resolve(secrets.SemanticScholarKey),
		RequestsPerSecond:     viper.GetFloat64("search.requests_per_second"),
		InterBackendDelay:     delay,
	}
}

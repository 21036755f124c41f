// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/export"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [titles...]",
	Short: "Analyze research papers by title",
	Long: `Analyze sends each paper title to a text-generation API and parses the
answer into a record: authors, summary, key points, limitations, methodology,
and future research directions. Sections the answer omits stay empty.

Records are printed and exported to --output (.xlsx, .json, or .yaml).`,
	RunE: runAnalyze,
}

func init() {
	addAIFlags(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", "research_analysis.xlsx", "export file; empty disables export")
	analyzeCmd.Flags().Bool("json", false, "print records as JSON")
	analyzeCmd.Flags().String("raw-dir", "", "save each raw API response to <raw-dir>/<slug>.txt")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more paper titles")
	}
	if err := bindFlags(cmd, aiFlagKeys); err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	rawDir, _ := cmd.Flags().GetString("raw-dir")

	if output != "" {
		if _, err := export.FormatFor(output); err != nil {
			return err
		}
	}
	if rawDir != "" {
		if err := os.MkdirAll(rawDir, 0o755); err != nil {
			return fmt.Errorf("creating raw directory: %w", err)
		}
	}

	client := &http.Client{Timeout: httpConfig().Timeout}
	analyzer, err := newAnalyzer(analysisConfig(), client)
	if err != nil {
		return err
	}

	results, summary := analyzer.AnalyzeTitles(cmd.Context(), args, os.Stderr)

	records := make([]types.PaperAnalysis, 0, len(results))
	for _, res := range results {
		records = append(records, res.Record)
		if rawDir != "" {
			path := filepath.Join(rawDir, slugify(res.Record.Title)+".txt")
			if err := os.WriteFile(path, []byte(res.Raw), 0o644); err != nil {
				return fmt.Errorf("saving raw response: %w", err)
			}
		}
	}

	if asJSON {
		if err := printJSON(os.Stdout, records); err != nil {
			return err
		}
	} else {
		for _, rec := range records {
			printAnalysis(os.Stdout, rec)
		}
	}

	if output != "" && len(records) > 0 {
		if err := export.WriteAnalyses(output, records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Analysis exported to %s\n", output)
	}

	fmt.Fprintf(os.Stderr, "analyzed %d, incomplete %d, failed %d\n", summary.Analyzed, summary.Incomplete, summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed analysis", summary.Failed)
	}
	return nil
}

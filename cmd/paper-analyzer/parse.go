// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-analyzer/internal/export"
	"github.com/pdiddy/paper-analyzer/internal/extract"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract a record from a saved API response",
	Long: `Parse runs the response extractor on a saved text-generation answer
without calling any API. Read from stdin when the file is "-" or omitted.
The title defaults to the file name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("title", "", "paper title for the record")
	parseCmd.Flags().Bool("json", false, "print the record as JSON")
	parseCmd.Flags().StringP("output", "o", "", "export file (.xlsx, .json, or .yaml)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	asJSON, _ := cmd.Flags().GetBool("json")
	output, _ := cmd.Flags().GetString("output")

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	raw, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if title == "" && path != "-" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rec := extract.Extract(title, raw)
	if rec.IsEmpty() {
		logger.Warn("no recognized sections", "input", path, "labels", extract.Labels())
	}

	if asJSON {
		if err := printJSON(cmd.OutOrStdout(), rec); err != nil {
			return err
		}
	} else {
		printAnalysis(cmd.OutOrStdout(), rec)
	}

	if output != "" {
		if err := export.WriteAnalyses(output, []types.PaperAnalysis{rec}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Analysis exported to %s\n", output)
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

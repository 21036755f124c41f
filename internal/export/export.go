// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes analysis records and scholar papers to disk. The
// format follows the file extension: .xlsx spreadsheets, .json, or .yaml.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ErrUnsupportedFormat is returned for a path whose extension has no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor returns the format selected by the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .xlsx, .json, or .yaml)", ErrUnsupportedFormat, path)
	}
}

// WriteAnalyses writes one row per analysis to path, in order.
func WriteAnalyses(path string, analyses []types.PaperAnalysis) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if analyses == nil {
		analyses = []types.PaperAnalysis{}
	}

	switch format {
	case FormatXLSX:
		return writeSheet(path, analysisSheet(analyses))
	case FormatJSON:
		return writeJSON(path, analyses)
	default:
		return writeYAML(path, analyses)
	}
}

// WritePapers writes one row per paper to path, in order.
func WritePapers(path string, papers []types.ScholarPaper) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if papers == nil {
		papers = []types.ScholarPaper{}
	}

	switch format {
	case FormatXLSX:
		return writeSheet(path, paperSheet(papers))
	case FormatJSON:
		return writeJSON(path, papers)
	default:
		return writeYAML(path, papers)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

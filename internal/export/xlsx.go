// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Sheet names.
const (
	AnalysisSheet = "Research Analysis"
	PapersSheet   = "Research Results"
)

// maxColumnWidth caps column widths in characters.
const maxColumnWidth = 50

var (
	analysisColumns = []string{"Title", "Authors", "Summary", "Key Points", "Limitations", "Methodology", "Future Directions"}
	paperColumns    = []string{"Title", "Authors", "Year", "URL", "Key Points", "Limitations", "BibTeX"}
)

// sheet is a header plus string rows, ready to lay out.
type sheet struct {
	name   string
	header []string
	rows   [][]string
}

func analysisSheet(analyses []types.PaperAnalysis) sheet {
	s := sheet{name: AnalysisSheet, header: analysisColumns}
	for _, a := range analyses {
		s.rows = append(s.rows, []string{
			a.Title,
			strings.Join(a.Authors, ", "),
			a.Summary,
			bulleted(a.KeyPoints),
			bulleted(a.Limitations),
			a.Methodology,
			a.FutureDirections,
		})
	}
	return s
}

func paperSheet(papers []types.ScholarPaper) sheet {
	s := sheet{name: PapersSheet, header: paperColumns}
	for _, p := range papers {
		year := ""
		if p.Year > 0 {
			year = strconv.Itoa(p.Year)
		}
		s.rows = append(s.rows, []string{
			p.Title,
			strings.Join(p.Authors, ", "),
			year,
			p.URL,
			strings.Join(p.KeyPoints, "\n"),
			strings.Join(p.Limitations, "\n"),
			p.BibTeX,
		})
	}
	return s
}

// bulleted joins items one per line, each prefixed with a bullet.
func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// columnWidths returns per-column widths: the longest cell (header
// included) plus two, capped at maxColumnWidth.
func columnWidths(s sheet) []float64 {
	widths := make([]float64, len(s.header))
	for i, h := range s.header {
		longest := utf8.RuneCountInString(h)
		for _, row := range s.rows {
			if n := utf8.RuneCountInString(row[i]); n > longest {
				longest = n
			}
		}
		widths[i] = float64(min(longest+2, maxColumnWidth))
	}
	return widths
}

// writeSheet lays s out on a single worksheet and saves the workbook to path.
func writeSheet(path string, s sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating cell style: %w", err)
	}

	if err := setRow(f, s.name, 1, s.header); err != nil {
		return err
	}
	for i, row := range s.rows {
		if err := setRow(f, s.name, i+2, row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(s.header))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetCellStyle(s.name, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if len(s.rows) > 0 {
		last := fmt.Sprintf("%s%d", lastCol, len(s.rows)+1)
		if err := f.SetCellStyle(s.name, "A2", last, cellStyle); err != nil {
			return fmt.Errorf("styling cells: %w", err)
		}
	}

	for i, w := range columnWidths(s) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, name string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(name, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns loosely structured text-generation output into
// PaperAnalysis records. Extraction is best effort: a section that is missing
// or malformed leaves its field empty and never fails the call.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// scalarSeparator divides a scalar section's label from its payload.
const scalarSeparator = ":"

// numberedMarkerRe matches ordered-list markers such as "1." or "2)".
var numberedMarkerRe = regexp.MustCompile(`^\d+[.)](\s+|$)`)

// Extract parses raw into a PaperAnalysis for title. Blocks are classified
// independently; when several blocks map to the same field, the last one wins.
func Extract(title, raw string) types.PaperAnalysis {
	rec := types.PaperAnalysis{
		Title:       title,
		Authors:     []string{},
		KeyPoints:   []string{},
		Limitations: []string{},
	}

	for _, block := range SplitBlocks(raw) {
		s, ok := classify(block)
		if !ok {
			continue
		}
		switch s.kind {
		case KindList:
			setList(&rec, s.field, listItems(block))
		case KindScalar:
			// A missing separator yields "", which clears the field.
			v, _ := scalarValue(block, s.label)
			setScalar(&rec, s.field, v)
		}
	}

	return rec
}

// SplitBlocks splits raw into paragraphs separated by blank lines. Lines
// holding only whitespace count as blank. Blocks keep their inner newlines.
func SplitBlocks(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var blocks []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
		}
		current = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// listItems drops the block's header line and returns the cleaned,
// non-empty remaining lines in order.
func listItems(block string) []string {
	lines := strings.Split(block, "\n")
	items := []string{}
	for _, line := range lines[1:] {
		if item := cleanItem(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// cleanItem strips leading bullet or numbering markers and surrounding whitespace.
func cleanItem(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•+ \t")
	s = numberedMarkerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// scalarValue returns the text after the first separator that follows
// label in block. It reports false when the separator is absent.
func scalarValue(block string, label Label) (string, bool) {
	idx := strings.Index(block, string(label))
	if idx < 0 {
		return "", false
	}
	rest := block[idx+len(label):]
	sep := strings.Index(rest, scalarSeparator)
	if sep < 0 {
		return "", false
	}
	v := strings.TrimSpace(rest[sep+len(scalarSeparator):])
	// Markdown emphasis closing a bold label, as in "**Summary:** text".
	v = strings.TrimSpace(strings.TrimLeft(v, "*_"))
	return v, true
}

func setList(rec *types.PaperAnalysis, f Field, items []string) {
	switch f {
	case FieldAuthors:
		rec.Authors = items
	case FieldKeyPoints:
		rec.KeyPoints = items
	case FieldLimitations:
		rec.Limitations = items
	}
}

func setScalar(rec *types.PaperAnalysis, f Field, v string) {
	switch f {
	case FieldSummary:
		rec.Summary = v
	case FieldMethodology:
		rec.Methodology = v
	case FieldFutureDirections:
		rec.FutureDirections = v
	}
}

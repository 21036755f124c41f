// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// Label is a recognized section label. A block is classified by the first
// label, in precedence order, that it contains as a case-sensitive substring.
type Label string

const (
	LabelAuthors     Label = "Authors"
	LabelSummary     Label = "Summary"
	LabelKeyFindings Label = "Key findings"
	LabelKeyPoints   Label = "Key points"
	LabelLimitations Label = "Limitations"
	LabelMethodology Label = "Methodology"
	LabelFuture      Label = "Future"
)

// Field names the PaperAnalysis field a label populates.
type Field string

const (
	FieldAuthors          Field = "authors"
	FieldSummary          Field = "summary"
	FieldKeyPoints        Field = "key_points"
	FieldLimitations      Field = "limitations"
	FieldMethodology      Field = "methodology"
	FieldFutureDirections Field = "future_directions"
)

// Kind tells how a block's payload is read.
type Kind int

const (
	// KindList drops the header line and keeps one item per remaining line.
	KindList Kind = iota
	// KindScalar keeps the text after the first ':' following the label.
	KindScalar
)

type labelRule struct {
	label Label
	field Field
	kind  Kind
}

// recognized is ordered by classification precedence.
var recognized = []labelRule{
	{LabelAuthors, FieldAuthors, KindList},
	{LabelSummary, FieldSummary, KindScalar},
	{LabelKeyFindings, FieldKeyPoints, KindList},
	{LabelKeyPoints, FieldKeyPoints, KindList},
	{LabelLimitations, FieldLimitations, KindList},
	{LabelMethodology, FieldMethodology, KindScalar},
	{LabelFuture, FieldFutureDirections, KindScalar},
}

// Labels returns the recognized labels in precedence order.
func Labels() []Label {
	out := make([]Label, len(recognized))
	for i, s := range recognized {
		out[i] = s.label
	}
	return out
}

// Classify returns the label of the block, or false when the block matches
// no recognized label.
func Classify(block string) (Label, bool) {
	s, ok := classify(block)
	return s.label, ok
}

// Field returns the record field populated by l.
func (l Label) Field() Field {
	if s, ok := ruleFor(l); ok {
		return s.field
	}
	return ""
}

// Kind returns how blocks carrying l are parsed.
func (l Label) Kind() Kind {
	if s, ok := ruleFor(l); ok {
		return s.kind
	}
	return KindList
}

func classify(block string) (labelRule, bool) {
	for _, s := range recognized {
		if strings.Contains(block, string(s.label)) {
			return s, true
		}
	}
	return labelRule{}, false
}

func ruleFor(l Label) (labelRule, bool) {
	for _, s := range recognized {
		if s.label == l {
			return s, true
		}
	}
	return labelRule{}, false
}

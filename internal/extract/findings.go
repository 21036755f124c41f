// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// SplitFindings divides a two-list abstract analysis at the first
// "Limitations" label: lines before it are key points, lines after it are
// limitations. Heading lines and the remainder of the label line are
// dropped. ok is false when the label never appears; both lists are then
// empty.
func SplitFindings(raw string) (keyPoints, limitations []string, ok bool) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	idx := strings.Index(raw, string(LabelLimitations))
	if idx < 0 {
		return []string{}, []string{}, false
	}

	after := raw[idx+len(LabelLimitations):]
	if nl := strings.Index(after, "\n"); nl >= 0 {
		after = after[nl+1:]
	} else {
		after = ""
	}

	return findingLines(raw[:idx]), findingLines(after), true
}

func findingLines(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		item := cleanItem(line)
		if item == "" || isHeader(item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

// isHeader reports whether item is a list heading rather than a finding,
// e.g. "Key findings:" or "**Key points**".
func isHeader(item string) bool {
	s := strings.TrimRight(item, "*_ ")
	if strings.HasSuffix(s, ":") {
		return true
	}
	for _, l := range []Label{LabelKeyFindings, LabelKeyPoints} {
		if strings.EqualFold(s, string(l)) {
			return true
		}
	}
	return false
}

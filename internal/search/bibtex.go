// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// BibTeX renders r as a BibTeX entry. The citation key is the first
// author's surname followed by the year (e.g. "Vaswani2017"); "Anonymous"
// and "nd" stand in for missing parts.
func BibTeX(r types.SearchResult) string {
	entryType := entryType(r.Venue)
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", entryType, citationKey(r))

	if len(r.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", escapeLatex(strings.Join(r.Authors, " and ")))
	}
	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(r.Title))

	if r.Venue != "" {
		field := "journal"
		if entryType == "inproceedings" {
			field = "booktitle"
		}
		fmt.Fprintf(&b, "  %s = {%s},\n", field, escapeLatex(r.Venue))
	}
	if y := r.Year(); y > 0 {
		fmt.Fprintf(&b, "  year = {%d},\n", y)
	}
	if r.DOI != "" {
		fmt.Fprintf(&b, "  doi = {%s},\n", r.DOI)
	}
	if r.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", r.URL)
	}

	b.WriteString("}\n")
	return b.String()
}

func citationKey(r types.SearchResult) string {
	surname := "Anonymous"
	if len(r.Authors) > 0 {
		if fields := strings.Fields(r.Authors[0]); len(fields) > 0 {
			surname = keepAlnum(fields[len(fields)-1])
		}
	}
	if surname == "" {
		surname = "Anonymous"
	}
	year := "nd"
	if y := r.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}
	return surname + year
}

func keepAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// entryType returns "inproceedings" for conference-like venues and "article" otherwise.
func entryType(venue string) string {
	v := strings.ToLower(venue)
	for _, marker := range []string{"proceedings", "conference", "workshop", "symposium"} {
		if strings.Contains(v, marker) {
			return "inproceedings"
		}
	}
	return "article"
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// printAnalysis writes a human-readable analysis record.
func printAnalysis(w io.Writer, a types.PaperAnalysis) {
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Title: %s\n", a.Title)
	fmt.Fprintf(w, "\nAuthors: %s\n", strings.Join(a.Authors, ", "))
	fmt.Fprintf(w, "\nSummary: %s\n", a.Summary)
	printList(w, "Key Points", a.KeyPoints)
	printList(w, "Limitations", a.Limitations)
	fmt.Fprintf(w, "\nMethodology: %s\n", a.Methodology)
	fmt.Fprintf(w, "\nFuture Directions: %s\n", a.FutureDirections)
}

// printPaper writes a human-readable scholar paper.
func printPaper(w io.Writer, p types.ScholarPaper) {
	fmt.Fprintf(w, "\nTitle: %s\n", p.Title)
	fmt.Fprintf(w, "Authors: %s\n", strings.Join(p.Authors, ", "))
	if p.Year > 0 {
		fmt.Fprintf(w, "Year: %d\n", p.Year)
	}
	if p.URL != "" {
		fmt.Fprintf(w, "URL: %s\n", p.URL)
	}
	printList(w, "Key Points", p.KeyPoints)
	printList(w, "Limitations", p.Limitations)
}

func printList(w io.Writer, heading string, items []string) {
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(w, "• %s\n", item)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// slugify turns a title into a filename stem: lowercase letters and digits
// separated by single hyphens, at most 80 runes.
func slugify(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	slug := []rune(strings.Join(words, "-"))
	if len(slug) > 80 {
		slug = slug[:80]
	}
	if s := strings.TrimRight(string(slug), "-"); s != "" {
		return s
	}
	return "untitled"
}

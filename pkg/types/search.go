// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-analyzer pipeline:
// search results from scholarly APIs, analysis records parsed from
// text-generation output, and stage configuration.
package types

import "time"

// SearchResult represents a candidate paper returned by an academic API query.
type SearchResult struct {
	// Identifier is the canonical ID from the source (arXiv ID, DOI, or paper ID).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Date is the publication or preprint date.
	Date time.Time `json:"date" yaml:"date"`

	// Venue is the journal or conference, when the source reports one.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is the digital object identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL links to the paper landing page.
	URL string `json:"url" yaml:"url"`

	// Source identifies which backend found this result (e.g. "arxiv", "semantic_scholar").
	Source string `json:"source" yaml:"source"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating relevance to the query.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Year returns the publication year, or 0 when the date is unknown.
func (r SearchResult) Year() int {
	if r.Date.IsZero() {
		return 0
	}
	return r.Date.Year()
}

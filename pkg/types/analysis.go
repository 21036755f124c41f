// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperAnalysis is the structured record extracted from one text-generation
// response about a paper title. Empty fields mean the section was not found;
// they are never an error. A record is built once and not modified afterwards.
type PaperAnalysis struct {
	// Title is the analyzed title, passed through verbatim.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in response order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the text following the Summary label.
	Summary string `json:"summary" yaml:"summary"`

	// KeyPoints lists the key findings in response order.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// Limitations lists the research limitations in response order.
	Limitations []string `json:"limitations" yaml:"limitations"`

	// Methodology is the text following the Methodology label.
	Methodology string `json:"methodology" yaml:"methodology"`

	// FutureDirections is the text following the Future ... directions label.
	FutureDirections string `json:"future_directions" yaml:"future_directions"`
}

// IsEmpty reports whether no section besides the title was found.
func (a PaperAnalysis) IsEmpty() bool {
	return len(a.Authors) == 0 && a.Summary == "" && len(a.KeyPoints) == 0 &&
		len(a.Limitations) == 0 && a.Methodology == "" && a.FutureDirections == ""
}

// ScholarPaper is a search hit enriched with key points and limitations
// derived from its title and abstract.
type ScholarPaper struct {
	// Title is the paper title as returned by the search backend.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// URL links to the paper landing page.
	URL string `json:"url" yaml:"url"`

	// KeyPoints lists the main findings.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// Limitations lists research gaps.
	Limitations []string `json:"limitations" yaml:"limitations"`

	// BibTeX is a citation entry for the paper.
	BibTeX string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
}

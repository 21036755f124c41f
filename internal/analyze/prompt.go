// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"text/template"
)

// titlePromptTmpl asks for an analysis of a paper title laid out in the
// labeled, blank-line separated sections the extractor recognizes.
var titlePromptTmpl = template.Must(template.New("title").Parse(`Analyze this research paper title in depth:
"{{.Title}}"

Provide a detailed analysis. Use exactly the section labels below, in this order, and separate sections with one blank line. Do not put blank lines inside a section.

Authors:
- 3-4 realistic author names, one per line

Summary: a comprehensive summary in a single paragraph

Key findings:
- 4-5 key findings, one per line

Limitations:
- 2-3 research limitations, one per line

Methodology: the methodology used

Future research directions: the most promising future research directions
{{- if .Focus}}

Make the analysis specific to {{.Focus}}.
{{- end}}
`))

// abstractPromptTmpl asks for key findings and limitations of a search hit.
var abstractPromptTmpl = template.Must(template.New("abstract").Parse(`Analyze this research paper:
Title: {{.Title}}
Abstract: {{.Abstract}}

Please identify:
1. Key findings and contributions
2. Limitations or research gaps

Format your response as two lists. Start the second list with a line containing the word "Limitations".
`))

type titlePromptData struct {
	Title string
	Focus string
}

type abstractPromptData struct {
	Title    string
	Abstract string
}

func renderTitlePrompt(title, focus string) (string, error) {
	return render(titlePromptTmpl, titlePromptData{Title: title, Focus: focus})
}

func renderAbstractPrompt(title, abstract string) (string, error) {
	if abstract == "" {
		abstract = "Not available"
	}
	return render(abstractPromptTmpl, abstractPromptData{Title: title, Abstract: abstract})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

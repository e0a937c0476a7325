// Package detail builds the content of the finding detail popup.
package detail

import (
	"strings"

	"github.com/trivytui/trivy-tui/internal/report"
)

// Block is one labeled section of the popup.
type Block struct {
	Label string
	Body  string
}

// Build returns the labeled blocks for f in display order. Absent fields are
// left out entirely.
func Build(f report.Finding) []Block {
	fields := []struct {
		label string
		value *string
	}{
		{"Title", f.Title},
		{"Description", f.Description},
		{"Vulnerability ID", f.VulnerabilityID},
		{"Severity", f.Severity},
		{"Severity Source", f.SeveritySource},
		{"Package Name", f.PkgName},
		{"Installed Version", f.InstalledVersion},
		{"Fixed Version", f.FixedVersion},
	}

	blocks := make([]Block, 0, len(fields))
	for _, fl := range fields {
		if fl.value == nil {
			continue
		}
		blocks = append(blocks, Block{Label: fl.label, Body: *fl.value})
	}
	return blocks
}

// Title is the popup heading for f.
func Title(f report.Finding) string {
	if f.VulnerabilityID == nil {
		return "Summary"
	}
	return "Summary for " + *f.VulnerabilityID
}

// LineKind tells the renderer how to style a popup line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineLabel
	LineBody
)

// Line is a single line of popup text before styling.
type Line struct {
	Kind LineKind
	Text string
}

// Layout lays blocks out as popup lines: a blank line, the label, a blank
// line and the body for each block, closed by one trailing blank line.
// Multi-line bodies keep their line breaks.
func Layout(blocks []Block) []Line {
	lines := make([]Line, 0, 4*len(blocks)+1)
	for _, b := range blocks {
		lines = append(lines,
			Line{Kind: LineBlank},
			Line{Kind: LineLabel, Text: b.Label + ":"},
			Line{Kind: LineBlank},
		)
		for _, body := range strings.Split(b.Body, "\n") {
			lines = append(lines, Line{Kind: LineBody, Text: strings.TrimSuffix(body, "\r")})
		}
	}
	if len(blocks) > 0 {
		lines = append(lines, Line{Kind: LineBlank})
	}
	return lines
}

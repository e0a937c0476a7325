// Package rows flattens a scan report into the display rows of the findings
// table.
package rows

import "github.com/trivytui/trivy-tui/internal/report"

// Kind distinguishes structural rows from selectable finding rows.
type Kind int

const (
	KindSpacer Kind = iota
	KindGroupHeader
	KindFinding
)

func (k Kind) String() string {
	switch k {
	case KindSpacer:
		return "spacer"
	case KindGroupHeader:
		return "group-header"
	case KindFinding:
		return "finding"
	default:
		return "unknown"
	}
}

// Row is one line of the findings table. Target is set for group headers,
// Ref only for finding rows.
type Row struct {
	Kind   Kind
	Target string
	Ref    report.Ref
}

// IsFinding reports whether the row links to a finding.
func (r Row) IsFinding() bool { return r.Kind == KindFinding }

// Resolve returns the finding behind a finding row. Spacers and headers never
// resolve.
func (r Row) Resolve(rep report.ScanReport) (report.Finding, bool) {
	if !r.IsFinding() {
		return report.Finding{}, false
	}
	return rep.Lookup(r.Ref)
}

// Flatten turns the report into table rows. Every group with at least one
// finding contributes a spacer, a header carrying its target, another spacer
// and then one row per finding, in report order. Groups without findings
// contribute nothing.
func Flatten(rep report.ScanReport) []Row {
	out := make([]Row, 0, rep.FindingCount()+3*len(rep.Results))
	for gi, g := range rep.Results {
		if len(g.Vulnerabilities) == 0 {
			continue
		}
		out = append(out,
			Row{Kind: KindSpacer},
			Row{Kind: KindGroupHeader, Target: g.Target},
			Row{Kind: KindSpacer},
		)
		for vi := range g.Vulnerabilities {
			out = append(out, Row{Kind: KindFinding, Ref: report.Ref{Group: gi, Index: vi}})
		}
	}
	return out
}

// FirstFinding returns the index of the first finding row.
func FirstFinding(rs []Row) (int, bool) {
	for i, r := range rs {
		if r.IsFinding() {
			return i, true
		}
	}
	return 0, false
}

// LastFinding returns the index of the last finding row.
func LastFinding(rs []Row) (int, bool) {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i].IsFinding() {
			return i, true
		}
	}
	return 0, false
}

package report

import (
	"strings"

	"github.com/samber/lo"
)

// Severity is the normalised risk level reported by trivy for a finding.
type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
	SevUnknown  Severity = "UNKNOWN"
)

// Severities lists the known levels from most to least severe.
var Severities = []Severity{SevCritical, SevHigh, SevMedium, SevLow, SevUnknown}

// ParseSeverity maps a raw severity string onto a known level. Anything
// unrecognised, including the empty string, is SevUnknown.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToUpper(strings.TrimSpace(s))); sev {
	case SevCritical, SevHigh, SevMedium, SevLow:
		return sev
	default:
		return SevUnknown
	}
}

// ScanReport is the root of a trivy JSON report. It is not modified after
// Parse returns it.
type ScanReport struct {
	ArtifactName string        `json:"ArtifactName"`
	Results      []ResultGroup `json:"Results"`
}

// ResultGroup holds the findings for one scanned target, e.g. the OS
// packages of an image or a language lockfile inside it.
type ResultGroup struct {
	Target          string    `json:"Target"`
	Vulnerabilities []Finding `json:"Vulnerabilities,omitempty"`
}

// Finding is a single vulnerability record. Every field is optional; a nil
// field is omitted when rendered.
type Finding struct {
	VulnerabilityID  *string `json:"VulnerabilityID,omitempty"`
	Severity         *string `json:"Severity,omitempty"`
	Title            *string `json:"Title,omitempty"`
	Description      *string `json:"Description,omitempty"`
	SeveritySource   *string `json:"SeveritySource,omitempty"`
	PkgName          *string `json:"PkgName,omitempty"`
	InstalledVersion *string `json:"InstalledVersion,omitempty"`
	FixedVersion     *string `json:"FixedVersion,omitempty"`
}

// Sev returns the normalised severity of the finding.
func (f Finding) Sev() Severity {
	return ParseSeverity(Str(f.Severity))
}

// ID returns the vulnerability ID or "" when absent.
func (f Finding) ID() string {
	return Str(f.VulnerabilityID)
}

// Ref addresses a finding inside a ScanReport by group and position.
type Ref struct {
	Group int
	Index int
}

// Lookup resolves ref against the report. The boolean is false when ref does
// not point at an existing finding.
func (r ScanReport) Lookup(ref Ref) (Finding, bool) {
	if ref.Group < 0 || ref.Group >= len(r.Results) {
		return Finding{}, false
	}
	vulns := r.Results[ref.Group].Vulnerabilities
	if ref.Index < 0 || ref.Index >= len(vulns) {
		return Finding{}, false
	}
	return vulns[ref.Index], true
}

// FindingCount is the total number of findings across all groups.
func (r ScanReport) FindingCount() int {
	return lo.SumBy(r.Results, func(g ResultGroup) int {
		return len(g.Vulnerabilities)
	})
}

// SeverityCounts tallies findings per normalised severity.
func (r ScanReport) SeverityCounts() map[Severity]int {
	all := lo.FlatMap(r.Results, func(g ResultGroup, _ int) []Finding {
		return g.Vulnerabilities
	})
	return lo.CountValuesBy(all, Finding.Sev)
}

// Str dereferences an optional string field.
func Str(p *string) string {
	return lo.FromPtr(p)
}

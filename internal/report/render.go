package report

import (
	"fmt"
	"strings"
)

// Summary renders the per-severity totals on one line, e.g.
// "Findings: 3 (critical: 1, high: 2, medium: 0, low: 0, unknown: 0)".
func Summary(r ScanReport) string {
	counts := r.SeverityCounts()
	parts := make([]string, 0, len(Severities))
	for _, sev := range Severities {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ToLower(string(sev)), counts[sev]))
	}
	return fmt.Sprintf("Findings: %d (%s)", r.FindingCount(), strings.Join(parts, ", "))
}

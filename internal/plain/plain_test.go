package plain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivytui/trivy-tui/internal/report"
)

func nginxReport() report.ScanReport {
	return report.ScanReport{
		ArtifactName: "nginx:1.25",
		Results: []report.ResultGroup{
			{Target: "nginx (debian 12.4)", Vulnerabilities: []report.Finding{
				{VulnerabilityID: lo.ToPtr("CVE-2023-0001"), Severity: lo.ToPtr("CRITICAL"), PkgName: lo.ToPtr("libssl3")},
				{VulnerabilityID: lo.ToPtr("CVE-2023-0002"), Severity: lo.ToPtr("high")},
				{VulnerabilityID: lo.ToPtr("CVE-2023-0003")},
			}},
			{Target: "usr/lib/node_modules"},
			{Target: "app/go.sum", Vulnerabilities: []report.Finding{
				{VulnerabilityID: lo.ToPtr("GHSA-xxxx"), Severity: lo.ToPtr("LOW")},
			}},
		},
	}
}

func TestPrintTable_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, report.ScanReport{ArtifactName: "scratch", Results: []report.ResultGroup{{Target: "x"}}}))
	out := buf.String()
	assert.Contains(t, out, "Image: scratch")
	assert.Contains(t, out, "No vulnerabilities found")
	assert.NotContains(t, out, "target:")
}

func TestPrintTable_GroupedByTarget(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, nginxReport()))
	out := buf.String()

	assert.Contains(t, out, "Image: nginx:1.25")
	assert.Contains(t, out, "target: nginx (debian 12.4)")
	assert.Contains(t, out, "target: app/go.sum")
	assert.NotContains(t, out, "usr/lib/node_modules")
	assert.Equal(t, 2, strings.Count(out, "target: "), "one table per target")
	assert.Contains(t, out, "libssl3")
	assert.Contains(t, out, "Findings: 4 (critical: 1, high: 1, medium: 0, low: 1, unknown: 1)")

	// each finding sits under its own target, in report order
	first := strings.Index(out, "target: nginx (debian 12.4)")
	second := strings.Index(out, "target: app/go.sum")
	assert.Less(t, first, strings.Index(out, "CVE-2023-0003"))
	assert.Less(t, strings.Index(out, "CVE-2023-0003"), second)
	assert.Less(t, second, strings.Index(out, "GHSA-xxxx"))
}

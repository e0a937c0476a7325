package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alpineReport = `{"ArtifactName":"alpine:3.18","Results":[{"Target":"alpine","Vulnerabilities":[{"VulnerabilityID":"CVE-2023-1","Severity":"HIGH","Title":"t"}]}]}`

func TestParse_Alpine(t *testing.T) {
	r, err := Parse([]byte(alpineReport))
	require.NoError(t, err)

	assert.Equal(t, "alpine:3.18", r.ArtifactName)
	require.Len(t, r.Results, 1)
	assert.Equal(t, "alpine", r.Results[0].Target)
	require.Len(t, r.Results[0].Vulnerabilities, 1)

	f := r.Results[0].Vulnerabilities[0]
	assert.Equal(t, "CVE-2023-1", f.ID())
	assert.Equal(t, SevHigh, f.Sev())
	assert.Equal(t, "t", Str(f.Title))
	assert.Nil(t, f.Description)
	assert.Nil(t, f.SeveritySource)
	assert.Nil(t, f.PkgName)
	assert.Nil(t, f.InstalledVersion)
	assert.Nil(t, f.FixedVersion)
}

func TestParse_GroupWithoutVulnerabilities(t *testing.T) {
	raw := `{"ArtifactName":"img","Results":[{"Target":"a"},{"Target":"b","Vulnerabilities":null},{"Target":"c","Vulnerabilities":[]}]}`
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, r.Results, 3)
	for _, g := range r.Results {
		assert.Empty(t, g.Vulnerabilities, g.Target)
	}
	assert.Equal(t, 0, r.FindingCount())
}

func TestParse_EmptyResultsIsValid(t *testing.T) {
	r, err := Parse([]byte(`{"ArtifactName":"img","Results":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "img", r.ArtifactName)
	assert.Empty(t, r.Results)
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	raw := `{"SchemaVersion":2,"ArtifactName":"img","ArtifactType":"container_image","Results":[{"Target":"a","Class":"os-pkgs","Vulnerabilities":[{"VulnerabilityID":"CVE-1","CVSS":{"nvd":{"V3Score":9.8}}}]}]}`
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, r.FindingCount())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{name: "empty", raw: "", reason: "empty output"},
		{name: "whitespace", raw: "  \n", reason: "empty output"},
		{name: "malformed", raw: `{"ArtifactName":`, reason: "malformed JSON"},
		{name: "array", raw: `[1,2]`, reason: "malformed JSON"},
		{name: "null", raw: `null`, reason: "top-level value is not an object"},
		{name: "missing artifact", raw: `{"Results":[]}`, reason: `missing required key "ArtifactName"`},
		{name: "null artifact", raw: `{"ArtifactName":null,"Results":[]}`, reason: `missing required key "ArtifactName"`},
		{name: "missing results", raw: `{"ArtifactName":"img"}`, reason: `missing required key "Results"`},
		{name: "null results", raw: `{"ArtifactName":"img","Results":null}`, reason: `missing required key "Results"`},
		{name: "wrong results type", raw: `{"ArtifactName":"img","Results":"nope"}`, reason: `invalid "Results"`},
		{name: "wrong artifact type", raw: `{"ArtifactName":7,"Results":[]}`, reason: `invalid "ArtifactName"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	raw := []byte("{\"ArtifactName\":\"\xff\xfe\",\"Results\":[]}")
	_, err := Parse(raw)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "output is not valid UTF-8", pe.Reason)
}

func TestParseError_Message(t *testing.T) {
	inner := errors.New("boom")
	err := &ParseError{Reason: "malformed JSON", Err: inner}
	assert.EqualError(t, err, "parsing trivy report: malformed JSON: boom")
	assert.ErrorIs(t, err, inner)

	assert.EqualError(t, &ParseError{Reason: "empty output"}, "parsing trivy report: empty output")
}

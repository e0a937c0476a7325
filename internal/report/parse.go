package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// ParseError reports scanner output that is not a well-formed trivy report.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing trivy report: %s: %v", e.Reason, e.Err)
	}
	return "parsing trivy report: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes raw trivy JSON output. ArtifactName and Results are
// required; a payload missing either (or holding null) is rejected rather
// than being read as an empty report.
func Parse(raw []byte) (ScanReport, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ScanReport{}, &ParseError{Reason: "empty output"}
	}
	if !utf8.Valid(raw) {
		return ScanReport{}, &ParseError{Reason: "output is not valid UTF-8"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return ScanReport{}, &ParseError{Reason: "malformed JSON", Err: err}
	}
	if top == nil {
		return ScanReport{}, &ParseError{Reason: "top-level value is not an object"}
	}

	var r ScanReport
	if err := decodeRequired(top, "ArtifactName", &r.ArtifactName); err != nil {
		return ScanReport{}, err
	}
	var results []ResultGroup
	if err := decodeRequired(top, "Results", &results); err != nil {
		return ScanReport{}, err
	}
	r.Results = results

	for _, g := range r.Results {
		logrus.WithFields(logrus.Fields{
			"target":          g.Target,
			"vulnerabilities": len(g.Vulnerabilities),
		}).Trace("Parsed result group")
	}
	return r, nil
}

func decodeRequired(top map[string]json.RawMessage, key string, dst any) error {
	v, ok := top[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return &ParseError{Reason: fmt.Sprintf("missing required key %q", key)}
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return &ParseError{Reason: fmt.Sprintf("invalid %q", key), Err: err}
	}
	return nil
}

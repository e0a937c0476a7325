package trivy

import (
	"fmt"
	"strings"
)

// InvocationError reports a trivy run that did not produce a report: the
// binary was missing, failed to start, exited non-zero or ran out of time.
type InvocationError struct {
	ImageRef string
	// ExitCode is -1 when trivy did not run to completion.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, "trivy failed scanning %s (exit code %d)", e.ImageRef, e.ExitCode)
	} else {
		fmt.Fprintf(&b, "running trivy on %s: %v", e.ImageRef, e.Err)
	}
	if hint := hintFor(e.Stderr); hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}
	if out := tail(e.Stderr, maxStderrLines); out != "" {
		fmt.Fprintf(&b, "\n\nTrivy error output:\n%s", out)
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error { return e.Err }

const maxStderrLines = 20

func hintFor(stderr string) string {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "server gave http response to https client"):
		return "The registry speaks plain HTTP. Set trivy.insecure: true to allow it."
	case strings.Contains(s, "unauthorized"), strings.Contains(s, "authentication required"), strings.Contains(s, "denied"):
		return "Registry authentication failed. Check:\n" +
			"  - You are logged in to the registry (docker login / podman login)\n" +
			"  - TRIVY_USERNAME and TRIVY_PASSWORD if you use them"
	case strings.Contains(s, "manifest unknown"), strings.Contains(s, "not found"), strings.Contains(s, "unable to find"):
		return "Image not found. Check the image name and tag."
	case strings.Contains(s, "vulnerability db"), strings.Contains(s, "db error"), strings.Contains(s, "failed to download"):
		return "The vulnerability database could not be prepared. Check:\n" +
			"  - Network access to the trivy DB repository\n" +
			"  - trivy.skip_db_update is not set without a cached DB"
	}
	return ""
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

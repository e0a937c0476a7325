package trivy

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvocationError_Error(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      *InvocationError
		Contains []string
		Excludes []string
	}{
		{
			Name:     "Should report the exit code",
			Err:      &InvocationError{ImageRef: "alpine", ExitCode: 1, Err: errors.New("exit status 1")},
			Contains: []string{"trivy failed scanning alpine (exit code 1)"},
			Excludes: []string{"Trivy error output"},
		},
		{
			Name:     "Should report the cause when trivy did not run",
			Err:      &InvocationError{ImageRef: "alpine", ExitCode: -1, Err: errors.New("boom")},
			Contains: []string{"running trivy on alpine: boom"},
		},
		{
			Name:     "Should add an auth hint",
			Err:      &InvocationError{ImageRef: "private/app", ExitCode: 1, Stderr: "GET https://index.docker.io: UNAUTHORIZED"},
			Contains: []string{"Registry authentication failed", "Trivy error output:\nGET https://index.docker.io: UNAUTHORIZED"},
		},
		{
			Name:     "Should add an insecure registry hint",
			Err:      &InvocationError{ImageRef: "reg:5000/app", ExitCode: 1, Stderr: "http: server gave HTTP response to HTTPS client"},
			Contains: []string{"trivy.insecure"},
		},
		{
			Name:     "Should add a DB hint",
			Err:      &InvocationError{ImageRef: "alpine", ExitCode: 1, Stderr: "FATAL init error: DB error: failed to download vulnerability DB"},
			Contains: []string{"vulnerability database could not be prepared"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			msg := tc.Err.Error()
			for _, s := range tc.Contains {
				assert.Contains(t, msg, s)
			}
			for _, s := range tc.Excludes {
				assert.NotContains(t, msg, s)
			}
		})
	}
}

func TestInvocationError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("scan: %w", &InvocationError{Err: cause})
	assert.ErrorIs(t, err, cause)
}

func TestTail(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	out := tail(strings.Join(lines, "\n\n"), 3)
	assert.Equal(t, "line 27\nline 28\nline 29", out)
	assert.Equal(t, "", tail("  \n", 3))
}

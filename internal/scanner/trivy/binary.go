package trivy

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	semver "github.com/blang/semver/v4"

	"github.com/trivytui/trivy-tui/internal/ext"
)

// BinaryManager locates the trivy binary and reports its version.
type BinaryManager struct {
	customPath string
	ambassador ext.Ambassador
}

// NewBinaryManager creates a new binary manager.
// customPath: optional explicit path to the trivy binary
func NewBinaryManager(customPath string, ambassador ext.Ambassador) *BinaryManager {
	return &BinaryManager{
		customPath: customPath,
		ambassador: ambassador,
	}
}

// Find locates the trivy binary using the following search order:
// 1. Custom path (if provided)
// 2. $PATH lookup
func (bm *BinaryManager) Find() (string, error) {
	if bm.customPath != "" {
		if _, err := os.Stat(bm.customPath); err == nil {
			return bm.customPath, nil
		}
		return "", fmt.Errorf("custom trivy path not found: %s", bm.customPath)
	}

	path, err := bm.ambassador.LookPath("trivy")
	if err != nil {
		return "", fmt.Errorf("trivy binary not found in PATH: %w\n\n"+
			"To fix this:\n"+
			"  1. Install trivy:\n"+
			"     macOS:   brew install trivy\n"+
			"     Linux:   see https://trivy.dev/latest/getting-started/installation/\n"+
			"  2. Or specify an explicit path in config:\n"+
			"     trivy:\n"+
			"       binary: /path/to/trivy\n"+
			"  3. Or set TRIVY_TUI_BINARY=/path/to/trivy", err)
	}
	return path, nil
}

// Version runs `trivy --version` and returns the version string, e.g.
// "0.50.1".
func (bm *BinaryManager) Version(binaryPath string) (string, error) {
	cmd := exec.Command(binaryPath, "--version")
	output, err := bm.ambassador.RunCmd(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to get trivy version: %w", err)
	}
	return parseVersion(string(output))
}

// parseVersion extracts the version from `trivy --version` output. Newer
// releases print "Version: 0.50.1" followed by DB metadata; some builds
// print just the version. Anything that is not a version is an error.
func parseVersion(out string) (string, error) {
	token, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Version:"); ok {
			token = v
			break
		}
	}

	ver, err := semver.ParseTolerant(token)
	if err != nil {
		return "", fmt.Errorf("unexpected trivy version output %q: %w", strings.TrimSpace(out), err)
	}
	return ver.String(), nil
}

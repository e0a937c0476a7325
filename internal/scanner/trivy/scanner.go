package trivy

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"

	"github.com/trivytui/trivy-tui/internal/config"
	"github.com/trivytui/trivy-tui/internal/ext"
	"github.com/trivytui/trivy-tui/internal/scanner"
)

var _ scanner.Scanner = (*Scanner)(nil)

// Scanner implements scanner.Scanner by running the trivy CLI.
type Scanner struct {
	config     config.Trivy
	ambassador ext.Ambassador
	binaries   *BinaryManager
}

// NewScanner creates a trivy scanner. The binary is located on each call, so
// a missing trivy surfaces from Scan as an InvocationError.
func NewScanner(cfg config.Trivy, ambassador ext.Ambassador) *Scanner {
	return &Scanner{
		config:     cfg,
		ambassador: ambassador,
		binaries:   NewBinaryManager(cfg.BinaryPath, ambassador),
	}
}

// Scan implements scanner.Scanner. It returns trivy's stdout untouched.
func (s *Scanner) Scan(ctx context.Context, imageRef string) ([]byte, error) {
	ref, err := ParseReference(imageRef, s.config.Insecure)
	if err != nil {
		return nil, err
	}

	executable, err := s.binaries.Find()
	if err != nil {
		return nil, &InvocationError{ImageRef: imageRef, ExitCode: -1, Err: err}
	}

	args := s.args(imageRef)
	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Env = append(s.ambassador.Environ(), "TRIVY_NO_PROGRESS=true")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.WithFields(log.Fields{
		"image":      ref.Name(),
		"executable": executable,
		"args":       args,
	}).Debug("Running trivy")

	start := time.Now()
	stdout, err := s.ambassador.RunCmd(cmd)
	fields := log.Fields{
		"image":    ref.Name(),
		"duration": time.Since(start).String(),
		"bytes":    len(stdout),
	}
	if cmd.ProcessState != nil {
		fields["exit_code"] = cmd.ProcessState.ExitCode()
	}
	log.WithFields(fields).Debug("Finished trivy")

	if err != nil {
		return nil, wrapTrivyError(ctx, imageRef, err, stderr.String())
	}
	return stdout, nil
}

// Version implements scanner.Scanner.
func (s *Scanner) Version() (string, error) {
	executable, err := s.binaries.Find()
	if err != nil {
		return "", err
	}
	return s.binaries.Version(executable)
}

func (s *Scanner) args(imageRef string) []string {
	args := []string{
		"image",
		"--format", "json",
		"--quiet",
	}
	if s.config.CacheDir != "" {
		args = append(args, "--cache-dir", s.config.CacheDir)
	}
	if s.config.Severity != "" {
		args = append(args, "--severity", s.config.Severity)
	}
	if s.config.IgnoreUnfixed {
		args = append(args, "--ignore-unfixed")
	}
	if s.config.SkipDBUpdate {
		args = append(args, "--skip-db-update")
	}
	if s.config.Insecure {
		args = append(args, "--insecure")
	}
	if s.config.Timeout > 0 {
		args = append(args, "--timeout", s.config.Timeout.String())
	}
	return append(args, imageRef)
}

func wrapTrivyError(ctx context.Context, imageRef string, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &InvocationError{
			ImageRef: imageRef,
			ExitCode: -1,
			Stderr:   stderr,
			Err:      xerrors.Errorf("trivy did not finish: %w", ctxErr),
		}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &InvocationError{
			ImageRef: imageRef,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
			Err:      err,
		}
	}
	return &InvocationError{
		ImageRef: imageRef,
		ExitCode: -1,
		Stderr:   stderr,
		Err:      xerrors.Errorf("starting trivy: %w", err),
	}
}

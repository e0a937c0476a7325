package trivytui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/trivytui/trivy-tui/internal/config"
	"github.com/trivytui/trivy-tui/internal/ext"
	"github.com/trivytui/trivy-tui/internal/logging"
	"github.com/trivytui/trivy-tui/internal/plain"
	"github.com/trivytui/trivy-tui/internal/report"
	"github.com/trivytui/trivy-tui/internal/scanner"
	"github.com/trivytui/trivy-tui/internal/scanner/trivy"
	"github.com/trivytui/trivy-tui/internal/tui"
)

// Seams for tests.
var (
	newScanner = func(cfg config.Config) scanner.Scanner {
		return trivy.NewScanner(cfg.Trivy, ext.DefaultAmbassador)
	}
	runTUI     = tui.Run
	isTerminal = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
)

func runView(ctx context.Context, imageRef string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	closer, err := logging.Setup(cfg)
	defer closer.Close()
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	raw, err := scan(ctx, cfg, imageRef)
	if err != nil {
		return err
	}

	r, err := report.Parse(raw)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"image":    r.ArtifactName,
		"targets":  len(r.Results),
		"findings": r.FindingCount(),
	}).Info("Parsed trivy report")

	if !isTerminal(os.Stdout) {
		return plain.PrintTable(stdout, r)
	}
	return runTUI(r, imageRef)
}

// scan runs trivy once. Ctrl+C and the configured timeout both cancel it.
func scan(ctx context.Context, cfg config.Config, imageRef string) ([]byte, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Trivy.Timeout)
	defer cancel()

	s := newScanner(cfg)
	if log.IsLevelEnabled(log.DebugLevel) {
		if v, err := s.Version(); err == nil {
			log.WithField("version", v).Debug("Using trivy")
		}
	}

	if isTerminal(os.Stderr) {
		fmt.Fprintf(stderr, "Scanning %s with trivy...\n", imageRef)
	}
	return s.Scan(ctx, imageRef)
}

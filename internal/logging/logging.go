// Package logging configures the process-wide logrus logger. The terminal
// belongs to the viewer, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/trivytui/trivy-tui/internal/config"
)

// Level parses a log level name, falling back to info for anything logrus
// does not recognise.
func Level(name string) log.Level {
	if level, err := log.ParseLevel(name); err == nil {
		return level
	}
	return log.InfoLevel
}

// Setup points the standard logrus logger at cfg.LogFile using the JSON
// formatter. Without a log file all output is discarded. The returned closer
// releases the file and is never nil.
func Setup(cfg config.Config) (io.Closer, error) {
	log.SetLevel(Level(cfg.LogLevel))
	log.SetReportCaller(false)
	log.SetFormatter(&log.JSONFormatter{})

	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package scanner

import "context"

// Scanner runs a vulnerability scan against a container image.
type Scanner interface {
	// Scan scans imageRef and returns the raw JSON report. A failed
	// invocation is always an error, never an empty report.
	Scan(ctx context.Context, imageRef string) ([]byte, error)

	// Version returns the scanner version information.
	Version() (string, error)
}

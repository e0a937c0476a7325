// Package ext isolates the process environment the trivy runner depends on:
// the environment variables it forwards, the PATH lookup for the binary and
// the subprocess execution itself.
package ext

import (
	"os"
	"os/exec"
)

// DefaultAmbassador talks to the real operating system.
var DefaultAmbassador Ambassador = osAmbassador{}

// Ambassador is the seam between the trivy runner and the operating system.
type Ambassador interface {
	// Environ returns the environment handed down to trivy.
	Environ() []string
	// LookPath resolves an executable name against PATH.
	LookPath(file string) (string, error)
	// RunCmd runs cmd to completion and returns its stdout. Callers that
	// want stderr attach their own writer first.
	RunCmd(cmd *exec.Cmd) ([]byte, error)
}

type osAmbassador struct{}

func (osAmbassador) Environ() []string { return os.Environ() }

func (osAmbassador) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osAmbassador) RunCmd(cmd *exec.Cmd) ([]byte, error) { return cmd.Output() }

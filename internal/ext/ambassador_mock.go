package ext

import (
	"os/exec"

	"github.com/stretchr/testify/mock"
)

// MockAmbassador records calls for tests that must not touch PATH or spawn
// processes. RunCmd tolerates a nil stdout in Return.
type MockAmbassador struct {
	mock.Mock
}

// NewMockAmbassador returns a mock with no expectations set.
func NewMockAmbassador() *MockAmbassador {
	return &MockAmbassador{}
}

func (m *MockAmbassador) Environ() []string {
	args := m.Called()
	env, _ := args.Get(0).([]string)
	return env
}

func (m *MockAmbassador) LookPath(file string) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockAmbassador) RunCmd(cmd *exec.Cmd) ([]byte, error) {
	args := m.Called(cmd)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

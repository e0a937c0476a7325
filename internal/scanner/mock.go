package scanner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockScanner struct {
	mock.Mock
}

func NewMockScanner() *MockScanner {
	return &MockScanner{}
}

func (m *MockScanner) Scan(ctx context.Context, imageRef string) ([]byte, error) {
	args := m.Called(ctx, imageRef)
	var raw []byte
	if v := args.Get(0); v != nil {
		raw = v.([]byte)
	}
	return raw, args.Error(1)
}

func (m *MockScanner) Version() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

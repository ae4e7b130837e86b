package mocks

import (
	"context"

	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/stretchr/testify/mock"
)

// MockScanner is a mock implementation of the scanner.Scanner interface
type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context) ([]scanner.AccessPoint, error) {
	args := m.Called(ctx)
	if aps := args.Get(0); aps != nil {
		return aps.([]scanner.AccessPoint), args.Error(1)
	}
	return nil, args.Error(1)
}

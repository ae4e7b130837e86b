package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockToken mocks the paho mqtt.Token interface for publish assertions.
type MockToken struct {
	mock.Mock
}

// Error reports the error recorded for the token, if any.
func (m *MockToken) Error() error {
	args := m.Called()
	return args.Error(0)
}

// Wait blocks until the tracked operation completes.
func (m *MockToken) Wait() bool {
	args := m.Called()
	return args.Bool(0)
}

// Done exposes the completion channel of the tracked operation.
func (m *MockToken) Done() <-chan struct{} {
	args := m.Called()
	return args.Get(0).(<-chan struct{})
}

// Completed reports whether the tracked operation has finished.
func (m *MockToken) Completed() bool {
	args := m.Called()
	return args.Bool(0)
}

// WaitTimeout blocks until the tracked operation completes or the timeout
// elapses.
func (m *MockToken) WaitTimeout(timeout time.Duration) bool {
	args := m.Called(timeout)
	return args.Bool(0)
}

package mocks

import (
	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockGeodeticLocaliser is a mock implementation of the services.GeodeticLocaliser interface
type MockGeodeticLocaliser struct {
	mock.Mock
}

func (m *MockGeodeticLocaliser) AddData(identifier string, latitudeDeg, longitudeDeg, altitudeM float64) bool {
	args := m.Called(identifier, latitudeDeg, longitudeDeg, altitudeM)
	return args.Bool(0)
}

func (m *MockGeodeticLocaliser) LocaliseMany(identifiers []string) (models.GeodeticLandmark, int, bool) {
	args := m.Called(identifiers)
	return args.Get(0).(models.GeodeticLandmark), args.Int(1), args.Bool(2)
}

func (m *MockGeodeticLocaliser) Size() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockGeodeticLocaliser) Save(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

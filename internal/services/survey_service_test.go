package services_test

import (
	"testing"
	"time"

	"github.com/hugohadfield/locomapper-agent/internal/services"
	"github.com/hugohadfield/locomapper-agent/pkg/landmarkid"
	"github.com/hugohadfield/locomapper-agent/pkg/location"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/hugohadfield/locomapper-agent/tests/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSurveyService_Start_Success tests the successful start of the SurveyService.
func TestSurveyService_Start_Success(t *testing.T) {
	// Setup
	mockLocaliser := new(mocks.MockGeodeticLocaliser)
	mockProvider := new(mocks.MockLocationProvider)
	mockScanner := new(mocks.MockScanner)
	logger := zerolog.Nop()

	mockProvider.On("Close").Return(nil)

	s := services.NewSurveyService(
		1*time.Second,
		"landmarks.json",
		mockLocaliser,
		mockProvider,
		mockScanner,
		logger,
	)

	// Execute
	err := s.Start()

	// Assert
	assert.NoError(t, err)

	// Try to start again (should fail)
	err = s.Start()
	assert.Error(t, err)
	assert.Equal(t, "survey service is already running", err.Error())

	// Cleanup
	err = s.Stop()
	assert.NoError(t, err)
}

// TestSurveyService_Stop_Success tests the successful stop of the SurveyService.
func TestSurveyService_Stop_Success(t *testing.T) {
	// Setup
	mockLocaliser := new(mocks.MockGeodeticLocaliser)
	mockProvider := new(mocks.MockLocationProvider)
	mockScanner := new(mocks.MockScanner)
	logger := zerolog.Nop()

	mockProvider.On("Close").Return(nil)

	s := services.NewSurveyService(
		1*time.Second,
		"landmarks.json",
		mockLocaliser,
		mockProvider,
		mockScanner,
		logger,
	)

	// Start the service
	err := s.Start()
	assert.NoError(t, err)

	// Execute
	err = s.Stop()

	// Assert
	assert.NoError(t, err)

	// Try to stop again (should fail)
	err = s.Stop()
	assert.Error(t, err)
	assert.Equal(t, "survey service is not running", err.Error())
}

// TestSurveyService_RecordsVisibleNetworks tests that the survey loop records
// one observation per visible access point and persists the store.
func TestSurveyService_RecordsVisibleNetworks(t *testing.T) {
	// Setup
	mockLocaliser := new(mocks.MockGeodeticLocaliser)
	mockProvider := new(mocks.MockLocationProvider)
	mockScanner := new(mocks.MockScanner)
	logger := zerolog.Nop()

	mockProvider.On("GetLocation").Return(location.Location{
		Latitude:  51.5074,
		Longitude: -0.1278,
		Altitude:  11.0,
	}, nil)
	mockProvider.On("Close").Return(nil)

	mockScanner.On("Scan", mock.Anything).Return([]scanner.AccessPoint{
		{SSID: "HomeNetwork", BSSID: "AA:BB:CC:DD:EE:FF", SignalStrength: 70},
		{SSID: "CoffeeShop", BSSID: "00:14:22:01:23:45", SignalStrength: 40},
	}, nil)

	homeID := landmarkid.FromNetwork("HomeNetwork", "AA:BB:CC:DD:EE:FF")
	coffeeID := landmarkid.FromNetwork("CoffeeShop", "00:14:22:01:23:45")
	mockLocaliser.On("AddData", homeID, 51.5074, -0.1278, 11.0).Return(false)
	mockLocaliser.On("AddData", coffeeID, 51.5074, -0.1278, 11.0).Return(false)
	mockLocaliser.On("Save", "landmarks.json").Return(nil)
	mockLocaliser.On("Size").Return(2)

	s := services.NewSurveyService(
		100*time.Millisecond, // Short interval for testing
		"landmarks.json",
		mockLocaliser,
		mockProvider,
		mockScanner,
		logger,
	)

	// Start the service
	err := s.Start()
	assert.NoError(t, err)

	// Wait for at least one survey pass
	time.Sleep(150 * time.Millisecond)

	// Stop the service
	err = s.Stop()
	assert.NoError(t, err)

	// Assert
	mockProvider.AssertExpectations(t)
	mockScanner.AssertExpectations(t)
	mockLocaliser.AssertExpectations(t)
}

// TestSurveyService_ProviderFailure tests that a failing position source does
// not record any observations.
func TestSurveyService_ProviderFailure(t *testing.T) {
	// Setup
	mockLocaliser := new(mocks.MockGeodeticLocaliser)
	mockProvider := new(mocks.MockLocationProvider)
	mockScanner := new(mocks.MockScanner)
	logger := zerolog.Nop()

	mockProvider.On("GetLocation").Return(location.Location{}, assert.AnError)
	mockProvider.On("Close").Return(nil)

	s := services.NewSurveyService(
		100*time.Millisecond,
		"landmarks.json",
		mockLocaliser,
		mockProvider,
		mockScanner,
		logger,
	)

	err := s.Start()
	assert.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	err = s.Stop()
	assert.NoError(t, err)

	mockLocaliser.AssertNotCalled(t, "AddData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockLocaliser.AssertNotCalled(t, "Save", mock.Anything)
}

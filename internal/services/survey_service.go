package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hugohadfield/locomapper-agent/pkg/landmarkid"
	"github.com/hugohadfield/locomapper-agent/pkg/location"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/rs/zerolog"
)

// SurveyService trains the localiser: it periodically reads the device's
// position from the location provider, scans for WiFi networks and records one
// landmark observation per visible access point, persisting the store after
// each pass.
type SurveyService struct {
	// Configuration fields
	interval     time.Duration
	landmarkFile string

	// Dependencies
	localiser        GeodeticLocaliser
	locationProvider location.Provider
	wifiScanner      scanner.Scanner
	logger           zerolog.Logger

	// Internal state management
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewSurveyService creates a new SurveyService instance with the provided configuration.
func NewSurveyService(interval time.Duration, landmarkFile string, localiser GeodeticLocaliser,
	locationProvider location.Provider, wifiScanner scanner.Scanner, logger zerolog.Logger) *SurveyService {
	return &SurveyService{
		interval:         interval,
		landmarkFile:     landmarkFile,
		localiser:        localiser,
		locationProvider: locationProvider,
		wifiScanner:      wifiScanner,
		logger:           logger,
		running:          false,
	}
}

// Start initiates the SurveyService, periodically recording landmark observations.
func (s *SurveyService) Start() error {
	if s.running {
		s.logger.Warn().Msg("SurveyService is already running")
		return errors.New("survey service is already running")
	}

	// Initialize context and cancel function
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true

	// Start the survey goroutine
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.recordVisibleNetworks(); err != nil {
					s.logger.Error().
						Err(err).
						Msg("Failed to record visible networks")
				}
			case <-s.ctx.Done():
				s.logger.Info().Msg("SurveyService is stopping")
				s.running = false
				return
			}
		}
	}()

	s.logger.Info().
		Dur("interval_ms", s.interval).
		Str("landmark_file", s.landmarkFile).
		Msg("SurveyService started")
	return nil
}

// Stop gracefully stops the SurveyService, ensuring all goroutines are terminated.
func (s *SurveyService) Stop() error {
	if !s.running {
		s.logger.Warn().Msg("SurveyService is not running")
		return errors.New("survey service is not running")
	}

	// Signal cancellation and wait for the goroutine to exit
	s.cancel()
	s.wg.Wait()

	// Close the location provider
	if err := s.locationProvider.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to close location provider")
		return err
	}

	s.running = false
	s.logger.Info().Msg("SurveyService stopped")
	return nil
}

// recordVisibleNetworks reads the current position, records one observation
// per visible access point and persists the landmark store.
func (s *SurveyService) recordVisibleNetworks() error {
	// Fetch the current position from the provider
	position, err := s.locationProvider.GetLocation()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Failed to get location from provider")
		return err
	}

	accessPoints, err := s.wifiScanner.Scan(s.ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Failed to scan for WiFi networks")
		return err
	}

	for _, ap := range accessPoints {
		identifier := landmarkid.FromNetwork(ap.SSID, ap.BSSID)
		s.localiser.AddData(identifier, position.Latitude, position.Longitude, position.Altitude)
	}

	// Persist after every pass so a crash loses at most one pass of data
	if err := s.localiser.Save(s.landmarkFile); err != nil {
		s.logger.Error().
			Err(err).
			Str("landmark_file", s.landmarkFile).
			Msg("Failed to persist landmark store")
		return err
	}

	s.logger.Info().
		Int("networks", len(accessPoints)).
		Int("landmarks", s.localiser.Size()).
		Float64("latitude_deg", position.Latitude).
		Float64("longitude_deg", position.Longitude).
		Msg("Recorded visible networks")
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/pkg/identity"
	"github.com/hugohadfield/locomapper-agent/pkg/landmarkid"
	"github.com/hugohadfield/locomapper-agent/pkg/mqtt"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/rs/zerolog"
)

// LocalisationService periodically estimates the device's position from the
// landmarks visible right now and publishes the estimate to an MQTT broker.
type LocalisationService struct {
	// Configuration fields
	topic    string
	interval time.Duration
	qos      int

	// Dependencies
	deviceInfo  identity.DeviceInfoInterface
	mqttClient  mqtt.MQTTClient
	localiser   GeodeticLocaliser
	wifiScanner scanner.Scanner
	logger      zerolog.Logger

	// Internal state management
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewLocalisationService creates a new LocalisationService instance with the provided configuration.
func NewLocalisationService(topic string, interval time.Duration, qos int, deviceInfo identity.DeviceInfoInterface,
	mqttClient mqtt.MQTTClient, localiser GeodeticLocaliser, wifiScanner scanner.Scanner, logger zerolog.Logger) *LocalisationService {
	return &LocalisationService{
		topic:       topic,
		interval:    interval,
		qos:         qos,
		deviceInfo:  deviceInfo,
		mqttClient:  mqttClient,
		localiser:   localiser,
		wifiScanner: wifiScanner,
		logger:      logger,
		running:     false,
	}
}

// Start initiates the LocalisationService, periodically publishing position estimates.
func (l *LocalisationService) Start() error {
	if l.running {
		l.logger.Warn().Msg("LocalisationService is already running")
		return errors.New("localisation service is already running")
	}

	// Initialize context and cancel function
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.running = true

	// Start the estimate publishing goroutine
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := l.publishCurrentEstimate(); err != nil {
					l.logger.Error().
						Err(err).
						Msg("Failed to publish position estimate")
				}
			case <-l.ctx.Done():
				l.logger.Info().Msg("LocalisationService is stopping")
				l.running = false
				return
			}
		}
	}()

	l.logger.Info().
		Str("topic", l.topic).
		Dur("interval_ms", l.interval).
		Int("qos", l.qos).
		Msg("LocalisationService started")
	return nil
}

// Stop gracefully stops the LocalisationService, ensuring all goroutines are terminated.
func (l *LocalisationService) Stop() error {
	if !l.running {
		l.logger.Warn().Msg("LocalisationService is not running")
		return errors.New("localisation service is not running")
	}

	// Signal cancellation and wait for the goroutine to exit
	l.cancel()
	l.wg.Wait()

	l.running = false
	l.logger.Info().Msg("LocalisationService stopped")
	return nil
}

// publishCurrentEstimate scans for visible networks, localises against the
// stored landmarks and publishes the estimate to the MQTT broker. An unknown
// position (no visible network has stored observations) is not an error; the
// tick is skipped.
func (l *LocalisationService) publishCurrentEstimate() error {
	accessPoints, err := l.wifiScanner.Scan(l.ctx)
	if err != nil {
		l.logger.Error().
			Err(err).
			Msg("Failed to scan for WiFi networks")
		return err
	}

	identifiers := make([]string, 0, len(accessPoints))
	for _, ap := range accessPoints {
		identifiers = append(identifiers, landmarkid.FromNetwork(ap.SSID, ap.BSSID))
	}

	estimate, resolved, ok := l.localiser.LocaliseMany(identifiers)
	if !ok {
		l.logger.Warn().
			Int("networks", len(accessPoints)).
			Msg("Position unknown, no visible network has stored observations")
		return nil
	}

	// Construct the estimate message
	estimateMessage := models.PositionEstimate{
		DeviceID:          l.deviceInfo.GetDeviceID(),
		Timestamp:         time.Now(),
		LatitudeDeg:       estimate.LatitudeDeg,
		LongitudeDeg:      estimate.LongitudeDeg,
		AltitudeM:         estimate.AltitudeM,
		VisibleNetworks:   len(accessPoints),
		ResolvedLandmarks: resolved,
	}

	// Serialize the estimate message to JSON
	payload, err := json.Marshal(estimateMessage)
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to serialize position estimate")
		return err
	}

	// Publish the estimate to the MQTT topic
	token := l.mqttClient.Publish(l.topic, byte(l.qos), false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		l.logger.Error().
			Err(err).
			Str("topic", l.topic).
			Msg("Failed to publish position estimate to MQTT")
		return err
	}

	l.logger.Info().
		Interface("message", estimateMessage).
		Str("topic", l.topic).
		Msg("Position estimate published successfully")
	return nil
}

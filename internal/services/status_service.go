package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/pkg/identity"
	"github.com/hugohadfield/locomapper-agent/pkg/mqtt"
	"github.com/rs/zerolog"
)

// StatusService publishes periodic agent status messages, including how many
// landmarks the store currently holds.
type StatusService struct {
	PubTopic   string
	Interval   time.Duration
	Status     string
	QOS        int
	DeviceInfo identity.DeviceInfoInterface
	MqttClient mqtt.MQTTClient
	Localiser  GeodeticLocaliser
	Logger     zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStatusService initializes a new StatusService.
func NewStatusService(pubTopic string, interval time.Duration, status string, qos int, deviceInfo identity.DeviceInfoInterface,
	mqttClient mqtt.MQTTClient, localiser GeodeticLocaliser, logger zerolog.Logger) *StatusService {

	return &StatusService{
		PubTopic:   pubTopic,
		Interval:   interval,
		Status:     status,
		QOS:        qos,
		DeviceInfo: deviceInfo,
		MqttClient: mqttClient,
		Localiser:  localiser,
		Logger:     logger,
	}
}

// Start launches the status loop in a separate goroutine.
func (s *StatusService) Start() error {
	if s.ctx != nil {
		s.Logger.Warn().Msg("StatusService is already running")
		return errors.New("status service is already running")
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runStatusLoop()
	}()

	s.Logger.Info().Str("topic", s.PubTopic).Msg("StatusService started successfully")
	return nil
}

// Stop gracefully stops the status service.
func (s *StatusService) Stop() error {
	if s.ctx == nil {
		s.Logger.Warn().Msg("StatusService is not running")
		return errors.New("status service is not running")
	}

	s.cancel()
	s.wg.Wait()

	s.ctx = nil
	s.cancel = nil

	s.Logger.Info().Msg("StatusService stopped successfully")
	return nil
}

// runStatusLoop continuously sends status messages at the specified interval.
func (s *StatusService) runStatusLoop() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			statusMessage := models.SurveyStatus{
				DeviceID:      s.DeviceInfo.GetDeviceID(),
				Timestamp:     time.Now(),
				Status:        s.Status,
				LandmarkCount: s.Localiser.Size(),
			}

			payload, err := json.Marshal(statusMessage)
			if err != nil {
				s.Logger.Error().Err(err).Msg("Failed to serialize status message")
				continue
			}

			token := s.MqttClient.Publish(s.PubTopic, byte(s.QOS), false, payload)
			token.Wait()

			if err := token.Error(); err != nil {
				s.Logger.Error().Err(err).Msg("Failed to publish status message")
			} else {
				s.Logger.Debug().Msg("Status published successfully")
			}

		case <-s.ctx.Done():
			s.Logger.Info().Msg("StatusService stopping gracefully")
			return
		}
	}
}

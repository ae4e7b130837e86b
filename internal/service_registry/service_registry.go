package service_registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/hugohadfield/locomapper-agent/internal/constants"
	"github.com/hugohadfield/locomapper-agent/internal/services"
	"github.com/hugohadfield/locomapper-agent/internal/utils"
	"github.com/hugohadfield/locomapper-agent/pkg/file"
	"github.com/hugohadfield/locomapper-agent/pkg/identity"
	"github.com/hugohadfield/locomapper-agent/pkg/location"
	"github.com/hugohadfield/locomapper-agent/pkg/mqtt"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/rs/zerolog"
)

// Service is the interface for all plug-in services
type Service interface {
	Start() error
	Stop() error
}

// ServiceRegistry manages the lifecycle of various services in the system.
type ServiceRegistry struct {
	services    map[string]Service // Stores registered services
	serviceKeys []string           // Maintains order of service registration
	mqttClient  mqtt.MQTTClient
	fileClient  file.FileOperations
	Logger      zerolog.Logger
}

// NewServiceRegistry initializes a new service registry with dependencies.
func NewServiceRegistry(mqttClient mqtt.MQTTClient, fileClient file.FileOperations, logger zerolog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		services:   make(map[string]Service),
		mqttClient: mqttClient,
		fileClient: fileClient,
		Logger:     logger,
	}
}

// RegisterService adds a new service to the registry.
func (sr *ServiceRegistry) RegisterService(name string, svc Service) {
	if _, exists := sr.services[name]; exists {
		sr.Logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	sr.services[name] = svc
	sr.serviceKeys = append(sr.serviceKeys, name)
	sr.Logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order.
// If a service fails to start, it stops already started services.
func (sr *ServiceRegistry) StartServices() error {
	startedServices := []string{}

	for _, name := range sr.serviceKeys {
		svc := sr.services[name]
		sr.Logger.Info().Msgf("Starting service: %s", name)
		if err := svc.Start(); err != nil {
			sr.Logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			// Stop already started services before returning
			sr.Logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(startedServices) - 1; i >= 0; i-- {
				_ = sr.services[startedServices[i]].Stop()
			}
			return err
		}
		startedServices = append(startedServices, name)
	}

	return nil
}

// StopServices stops all services in reverse order.
func (sr *ServiceRegistry) StopServices() error {
	var stopErrors []error
	for i := len(sr.serviceKeys) - 1; i >= 0; i-- {
		name := sr.serviceKeys[i]
		if err := sr.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			sr.Logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}

// RegisterServices initializes and registers enabled services based on configuration.
func (sr *ServiceRegistry) RegisterServices(config *utils.Config, deviceInfo identity.DeviceInfoInterface,
	localiser services.GeodeticLocaliser, wifiScanner scanner.Scanner) error {
	// Ordered service definitions with inline constructors
	servicesInOrder := []struct {
		name        string
		enabled     bool
		constructor func() (Service, error)
	}{
		{
			name:    "survey",
			enabled: config.Services.Survey.Enabled,
			constructor: func() (Service, error) {
				provider, err := sr.buildLocationProvider(config, wifiScanner)
				if err != nil {
					sr.Logger.Error().Err(err).Msg("Failed to create location provider")
					return nil, err
				}
				return services.NewSurveyService(
					time.Duration(config.Services.Survey.Interval)*time.Second,
					config.Storage.LandmarkFile,
					localiser,
					provider,
					wifiScanner,
					sr.Logger,
				), nil
			},
		},
		{
			name:    "localisation",
			enabled: config.Services.Localisation.Enabled,
			constructor: func() (Service, error) {
				return services.NewLocalisationService(
					config.Services.Localisation.Topic,
					time.Duration(config.Services.Localisation.Interval)*time.Second,
					config.Services.Localisation.QOS,
					deviceInfo,
					sr.mqttClient,
					localiser,
					wifiScanner,
					sr.Logger,
				), nil
			},
		},
		{
			name:    "status",
			enabled: config.Services.Status.Enabled,
			constructor: func() (Service, error) {
				status := constants.StatusLocalising
				if config.Services.Survey.Enabled {
					status = constants.StatusSurveying
				}
				return services.NewStatusService(
					config.Services.Status.Topic,
					time.Duration(config.Services.Status.Interval)*time.Second,
					status,
					config.Services.Status.QOS,
					deviceInfo,
					sr.mqttClient,
					localiser,
					sr.Logger,
				), nil
			},
		},
	}

	// Register services in the predefined order
	registeredServices := []string{}
	for _, svc := range servicesInOrder {
		if svc.enabled {
			serviceInstance, err := svc.constructor()
			if err != nil {
				sr.Logger.Error().Err(err).Msgf("Failed to create %s service", svc.name)
				return err
			}
			sr.RegisterService(svc.name, serviceInstance)
			registeredServices = append(registeredServices, svc.name)
		}
	}

	sr.Logger.Info().Msgf("Registered services in order: %v", registeredServices)
	return nil
}

// buildLocationProvider selects the position source for the survey service
// based on configuration.
func (sr *ServiceRegistry) buildLocationProvider(config *utils.Config, wifiScanner scanner.Scanner) (location.Provider, error) {
	switch config.Location.Source {
	case "gps":
		return location.NewDeviceSensorProvider(config.Location.GPSDevicePort, config.Location.GPSDeviceBaudRate), nil
	case "google":
		return location.NewGoogleGeolocationProvider(config.Location.MapsAPIKey, wifiScanner)
	case "wigle":
		return location.NewWigleProvider(config.Location.WigleAPIName, config.Location.WigleAPIToken, wifiScanner, sr.Logger), nil
	case "ipinfo":
		return location.NewIpinfoProvider(config.Location.IpinfoToken, sr.Logger), nil
	case "opencellid":
		return location.NewOpenCellIdProvider(location.CellTower{
			MCC:    config.Location.CellMCC,
			MNC:    config.Location.CellMNC,
			LAC:    config.Location.CellLAC,
			CellID: config.Location.CellID,
		}, sr.Logger), nil
	default:
		return nil, fmt.Errorf("unknown location source %q", config.Location.Source)
	}
}

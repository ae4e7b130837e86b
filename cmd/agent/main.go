package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/hugohadfield/locomapper-agent/internal/localisation"
	"github.com/hugohadfield/locomapper-agent/internal/models"
	"github.com/hugohadfield/locomapper-agent/internal/service_registry"
	"github.com/hugohadfield/locomapper-agent/internal/store"
	"github.com/hugohadfield/locomapper-agent/internal/utils"
	"github.com/hugohadfield/locomapper-agent/pkg/file"
	"github.com/hugohadfield/locomapper-agent/pkg/identity"
	"github.com/hugohadfield/locomapper-agent/pkg/mqtt"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/rs/zerolog"
)

func main() {
	// Set up structured logging with JSON output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig("configs/config.yaml", fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize DeviceInfo and make sure the device has an identifier
	deviceInfo := identity.NewDeviceInfo(config.Identity.DeviceFile, fileClient)
	if err := deviceInfo.LoadDeviceInfo(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load device information")
	}
	deviceID, err := deviceInfo.EnsureDeviceID()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure device ID")
	}
	logger.Info().Str("device_id", deviceID).Msg("Device identity ready")

	// Generate a unique MQTT Client ID by appending a UUID
	config.MQTT.ClientID = config.MQTT.ClientID + "-" + uuid.New().String()
	logger.Info().Str("client_id", config.MQTT.ClientID).Msg("Using MQTT Client ID")

	// Initialize the shared MQTT connection
	mqttClient := mqtt.NewMqttService(fileClient)
	if err := mqttClient.Initialize(config.MQTT.Broker, config.MQTT.ClientID, config.MQTT.CACertificate); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize MQTT connection")
	}

	// Build the landmark store and localiser, loading any previous survey
	landmarkStore := store.NewLandmarkStore[models.GeodeticLandmark](fileClient, logger)
	localiser := localisation.NewGlobalLocaliser(landmarkStore, logger)
	loaded, found, err := localiser.LoadIfExists(config.Storage.LandmarkFile)
	if err != nil {
		logger.Fatal().Err(err).Str("landmark_file", config.Storage.LandmarkFile).Msg("Failed to load landmark store")
	}
	if found {
		logger.Info().Int("landmarks", loaded).Msg("Loaded landmark store")
	}

	wifiScanner := scanner.NewNmcliScanner()

	// Create a new service registry to manage services
	serviceRegistry := service_registry.NewServiceRegistry(mqttClient, fileClient, logger)

	// Register all services based on the configuration
	if err := serviceRegistry.RegisterServices(config, deviceInfo, localiser, wifiScanner); err != nil {
		logger.Fatal().Err(err).Msg("Failed to register services")
	}

	// Start all registered services in the registry
	if err := serviceRegistry.StartServices(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start services")
	}
	logger.Info().Msg("All services started successfully")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	if err := serviceRegistry.StopServices(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop some services")
	}

	// Persist the survey one last time before exiting
	if err := localiser.Save(config.Storage.LandmarkFile); err != nil {
		logger.Error().Err(err).Msg("Failed to save landmark store on shutdown")
	}

	mqttClient.Disconnect(250)
}

package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hugohadfield/locomapper-agent/internal/utils"
	"github.com/hugohadfield/locomapper-agent/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configFixture = `mqtt:
  broker: "ssl://broker.example.com:8883"
  client_id: "locomapper-agent"
  ca_certificate: "certs/ca.crt"

identity:
  device_file: "configs/device.json"

storage:
  landmark_file: "data/landmarks.json"

location:
  source: "wigle"
  wigle_api_name: "api-name"
  wigle_api_token: "api-token"
  ipinfo_token: "ipinfo-token"
  cell_mcc: 234
  cell_mnc: 15
  cell_lac: 24708
  cell_id: 2561566

services:
  survey:
    enabled: true
    interval: 10
  localisation:
    enabled: true
    topic: "locomapper/position"
    interval: 15
    qos: 1
  status:
    enabled: false
    topic: "locomapper/status"
    interval: 60
    qos: 0
`

// TestLoadConfig tests loading a full configuration file.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configFixture), 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)

	assert.Equal(t, "ssl://broker.example.com:8883", config.MQTT.Broker)
	assert.Equal(t, "locomapper-agent", config.MQTT.ClientID)
	assert.Equal(t, "data/landmarks.json", config.Storage.LandmarkFile)
	assert.Equal(t, "wigle", config.Location.Source)
	assert.Equal(t, "api-name", config.Location.WigleAPIName)
	assert.Equal(t, "ipinfo-token", config.Location.IpinfoToken)
	assert.Equal(t, 234, config.Location.CellMCC)
	assert.Equal(t, 2561566, config.Location.CellID)

	assert.True(t, config.Services.Survey.Enabled)
	assert.Equal(t, 10, config.Services.Survey.Interval)
	assert.Equal(t, "locomapper/position", config.Services.Localisation.Topic)
	assert.Equal(t, 15, config.Services.Localisation.Interval)
	assert.Equal(t, 1, config.Services.Localisation.QOS)
	assert.False(t, config.Services.Status.Enabled)
}

// TestLoadConfig_MissingFile tests that a missing configuration file is an error.
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := utils.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), file.NewFileService())
	assert.Error(t, err)
}

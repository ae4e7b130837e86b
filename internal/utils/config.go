package utils

import (
	"github.com/hugohadfield/locomapper-agent/pkg/file"
)

// Config represents the structure of the configuration file.
type Config struct {
	MQTT struct {
		Broker        string `yaml:"broker"`         // MQTT broker address
		ClientID      string `yaml:"client_id"`      // MQTT client ID
		CACertificate string `yaml:"ca_certificate"` // Path to the CA certificate
	} `yaml:"mqtt"`

	Identity struct {
		DeviceFile string `yaml:"device_file"` // Path to the device identity file
	} `yaml:"identity"`

	Storage struct {
		LandmarkFile string `yaml:"landmark_file"` // Path of the persisted landmark store
	} `yaml:"storage"`

	Location struct {
		Source            string `yaml:"source"`          // Position source: gps, google, wigle, ipinfo or opencellid
		GPSDevicePort     string `yaml:"gps_device_port"` // UNIX port where the GPS sensor is mounted
		GPSDeviceBaudRate int    `yaml:"gps_baud_rate"`   // The Baud rate for the GPS sensor
		MapsAPIKey        string `yaml:"maps_api_key"`    // Google maps API Key
		WigleAPIName      string `yaml:"wigle_api_name"`  // WiGLE API name
		WigleAPIToken     string `yaml:"wigle_api_token"` // WiGLE API token
		IpinfoToken       string `yaml:"ipinfo_token"`    // ipinfo.io access token
		CellMCC           int    `yaml:"cell_mcc"`        // Mobile country code of the serving cell
		CellMNC           int    `yaml:"cell_mnc"`        // Mobile network code of the serving cell
		CellLAC           int    `yaml:"cell_lac"`        // Location area code of the serving cell
		CellID            int    `yaml:"cell_id"`         // Cell ID of the serving cell
	} `yaml:"location"`

	Services struct {
		Survey struct {
			Enabled  bool `yaml:"enabled"`  // Enable/disable the survey service
			Interval int  `yaml:"interval"` // Interval between survey passes (in seconds)
		} `yaml:"survey"`

		Localisation struct {
			Enabled  bool   `yaml:"enabled"`  // Enable/disable the localisation service
			Topic    string `yaml:"topic"`    // MQTT topic for position estimates
			Interval int    `yaml:"interval"` // Interval between estimates (in seconds)
			QOS      int    `yaml:"qos"`      // MQTT QoS level for estimate messages
		} `yaml:"localisation"`

		Status struct {
			Enabled  bool   `yaml:"enabled"`  // Enable/disable the status service
			Topic    string `yaml:"topic"`    // MQTT topic for status messages
			Interval int    `yaml:"interval"` // Interval between status messages (in seconds)
			QOS      int    `yaml:"qos"`      // MQTT QoS level for status messages
		} `yaml:"status"`
	} `yaml:"services"`
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	// Use the ReadYamlFile method from fileClient
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

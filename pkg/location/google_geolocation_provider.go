package location

import (
	"context"
	"time"

	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"googlemaps.github.io/maps"
)

// GoogleGeolocationProvider uses the Google Maps Geolocation API to get
// location data from the WiFi access points visible to the device.
type GoogleGeolocationProvider struct {
	client      *maps.Client // Maps API client for making geolocation requests
	wifiScanner scanner.Scanner
}

// NewGoogleGeolocationProvider creates a new GoogleGeolocationProvider instance.
func NewGoogleGeolocationProvider(apiKey string, wifiScanner scanner.Scanner) (*GoogleGeolocationProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleGeolocationProvider{
		client:      c,
		wifiScanner: wifiScanner,
	}, nil
}

// GetLocation retrieves the device's location using Google Maps Geolocation API.
// The API does not return altitude, so the estimate's altitude is zero.
func (g *GoogleGeolocationProvider) GetLocation() (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accessPoints, err := g.wifiScanner.Scan(ctx)
	if err != nil {
		return Location{}, err // Return error if WiFi access points retrieval fails
	}

	wifiAPs := make([]maps.WiFiAccessPoint, 0, len(accessPoints))
	for _, ap := range accessPoints {
		wifiAPs = append(wifiAPs, maps.WiFiAccessPoint{
			MACAddress:     ap.BSSID,
			SignalStrength: ap.SignalStrength,
		})
	}

	// Prepare the geolocation request with available data
	req := &maps.GeolocationRequest{
		ConsiderIP:       true,
		WiFiAccessPoints: wifiAPs,
	}

	resp, err := g.client.Geolocate(ctx, req) // Send the geolocation request
	if err != nil {
		return Location{}, err
	}

	// Return the location data obtained from the response
	return Location{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
		Accuracy:  resp.Accuracy,
	}, nil
}

// Close releases the provider. The maps client holds no persistent connection.
func (g *GoogleGeolocationProvider) Close() error {
	return nil
}

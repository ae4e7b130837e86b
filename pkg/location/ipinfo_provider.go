package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// IpinfoProvider estimates the device's location from its public IP address
// via the ipinfo.io API. The estimate is coarse (city-level) but needs no
// sensors, which makes it a usable survey source for stationary devices.
type IpinfoProvider struct {
	client  HTTPClient
	baseURL string
	token   string // ipinfo.io access token
	logger  zerolog.Logger
}

// ipinfoResponse is the subset of the ipinfo.io details response the provider
// consumes. The loc field carries "latitude,longitude" as a single string.
type ipinfoResponse struct {
	Loc string `json:"loc"`
}

// NewIpinfoProvider creates an ipinfo.io-backed location provider.
func NewIpinfoProvider(token string, logger zerolog.Logger) *IpinfoProvider {
	return &IpinfoProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://ipinfo.io/json",
		token:   token,
		logger:  logger,
	}
}

// NewIpinfoProviderWithClient creates an ipinfo provider with a custom HTTP
// client. Useful for testing with mocked HTTP clients.
func NewIpinfoProviderWithClient(client HTTPClient, token string, logger zerolog.Logger) *IpinfoProvider {
	p := NewIpinfoProvider(token, logger)
	p.client = client
	return p
}

// GetLocation queries ipinfo.io for the coordinates associated with the
// device's public IP. Altitude is not available from an IP lookup and is
// reported as zero.
func (p *IpinfoProvider) GetLocation() (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := url.Values{}
	if p.token != "" {
		params.Set("token", p.token)
	}
	endpoint := p.baseURL
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("failed to query ipinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("ipinfo returned status code %d", resp.StatusCode)
	}

	var details ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return Location{}, fmt.Errorf("failed to decode ipinfo response: %w", err)
	}

	lat, lng, err := parseLocPair(details.Loc)
	if err != nil {
		return Location{}, err
	}

	p.logger.Debug().
		Float64("latitude", lat).
		Float64("longitude", lng).
		Msg("Resolved position from ipinfo")

	return Location{
		Latitude:  lat,
		Longitude: lng,
	}, nil
}

// parseLocPair splits an ipinfo "lat,lng" string into its coordinates.
func parseLocPair(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed ipinfo loc field %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed ipinfo latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed ipinfo longitude %q: %w", parts[1], err)
	}
	return lat, lng, nil
}

// Close releases provider resources. The ipinfo provider holds none.
func (p *IpinfoProvider) Close() error {
	return nil
}

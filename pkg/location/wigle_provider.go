package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hugohadfield/locomapper-agent/internal/utils"
	"github.com/hugohadfield/locomapper-agent/pkg/scanner"
	"github.com/rs/zerolog"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WigleProvider estimates the device's location from the WiGLE wardriving
// database: every visible access point is looked up by SSID and BSSID and the
// returned coordinates are averaged unweighted.
type WigleProvider struct {
	client      HTTPClient
	baseURL     string
	apiName     string // WiGLE API name, used as the basic auth user
	apiToken    string // WiGLE API token, used as the basic auth password
	wifiScanner scanner.Scanner
	pool        *utils.WorkerPool
	logger      zerolog.Logger
}

// wigleSearchResponse is the subset of the WiGLE network search response the
// provider consumes.
type wigleSearchResponse struct {
	Results []struct {
		Trilat  float64 `json:"trilat"`
		Trilong float64 `json:"trilong"`
	} `json:"results"`
}

// ErrNoNetworksResolved is returned when none of the visible access points are
// known to WiGLE.
var ErrNoNetworksResolved = errors.New("no visible network found in WiGLE")

const wigleLookupWorkers = 4

// NewWigleProvider creates a WiGLE-backed location provider.
func NewWigleProvider(apiName, apiToken string, wifiScanner scanner.Scanner, logger zerolog.Logger) *WigleProvider {
	return &WigleProvider{
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     "https://api.wigle.net/api/v2/network/search",
		apiName:     apiName,
		apiToken:    apiToken,
		wifiScanner: wifiScanner,
		pool:        utils.NewWorkerPool(wigleLookupWorkers),
		logger:      logger,
	}
}

// NewWigleProviderWithClient creates a WiGLE provider with a custom HTTP
// client. Useful for testing with mocked HTTP clients.
func NewWigleProviderWithClient(client HTTPClient, apiName, apiToken string, wifiScanner scanner.Scanner, logger zerolog.Logger) *WigleProvider {
	p := NewWigleProvider(apiName, apiToken, wifiScanner, logger)
	p.client = client
	return p
}

// GetLocation scans for WiFi networks, looks each of them up in WiGLE on the
// worker pool and returns the unweighted mean of the resolved coordinates.
func (w *WigleProvider) GetLocation() (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accessPoints, err := w.wifiScanner.Scan(ctx)
	if err != nil {
		return Location{}, err
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		latSum   float64
		lngSum   float64
		resolved int
	)

	for _, ap := range accessPoints {
		ap := ap
		wg.Add(1)
		w.pool.Submit(func() {
			defer wg.Done()

			lat, lng, err := w.lookupNetwork(ctx, ap.SSID, ap.BSSID)
			if err != nil {
				w.logger.Debug().
					Err(err).
					Str("ssid", ap.SSID).
					Msg("WiGLE lookup failed for network")
				return
			}

			mu.Lock()
			latSum += lat
			lngSum += lng
			resolved++
			mu.Unlock()
		})
	}
	wg.Wait()

	if resolved == 0 {
		return Location{}, ErrNoNetworksResolved
	}

	n := float64(resolved)
	return Location{
		Latitude:  latSum / n,
		Longitude: lngSum / n,
	}, nil
}

// lookupNetwork queries the WiGLE network search API for a single access point.
func (w *WigleProvider) lookupNetwork(ctx context.Context, ssid, bssid string) (float64, float64, error) {
	params := url.Values{}
	params.Set("ssid", ssid)
	params.Set("bssid", bssid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(w.apiName, w.apiToken)

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query WiGLE: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("WiGLE returned status code %d", resp.StatusCode)
	}

	var search wigleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return 0, 0, fmt.Errorf("failed to decode WiGLE response: %w", err)
	}
	if len(search.Results) == 0 {
		return 0, 0, errors.New("network not present in WiGLE")
	}

	// WiGLE orders results by relevance; take the first match.
	return search.Results[0].Trilat, search.Results[0].Trilong, nil
}

// Close shuts down the lookup worker pool.
func (w *WigleProvider) Close() error {
	w.pool.Shutdown()
	return nil
}

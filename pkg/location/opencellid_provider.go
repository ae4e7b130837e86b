package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// CellTower identifies the serving cell used for an OpenCellID lookup.
type CellTower struct {
	MCC    int // mobile country code
	MNC    int // mobile network code
	LAC    int // location area code
	CellID int
}

// OpenCellIdProvider estimates the device's location by looking up the
// serving cell tower in the OpenCellID database.
type OpenCellIdProvider struct {
	client  HTTPClient
	baseURL string
	tower   CellTower
	logger  zerolog.Logger
}

// openCellIdResponse is the subset of the searchCell response the provider
// consumes. OpenCellID returns the coordinates as strings.
type openCellIdResponse struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewOpenCellIdProvider creates an OpenCellID-backed location provider for the
// given cell tower.
func NewOpenCellIdProvider(tower CellTower, logger zerolog.Logger) *OpenCellIdProvider {
	return &OpenCellIdProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://opencellid.org/ajax/searchCell.php",
		tower:   tower,
		logger:  logger,
	}
}

// NewOpenCellIdProviderWithClient creates an OpenCellID provider with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewOpenCellIdProviderWithClient(client HTTPClient, tower CellTower, logger zerolog.Logger) *OpenCellIdProvider {
	p := NewOpenCellIdProvider(tower, logger)
	p.client = client
	return p
}

// GetLocation queries OpenCellID for the configured cell tower's coordinates.
// Altitude is not available from a cell lookup and is reported as zero.
func (p *OpenCellIdProvider) GetLocation() (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("mcc", strconv.Itoa(p.tower.MCC))
	params.Set("mnc", strconv.Itoa(p.tower.MNC))
	params.Set("lac", strconv.Itoa(p.tower.LAC))
	params.Set("cell_id", strconv.Itoa(p.tower.CellID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("failed to query OpenCellID: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("OpenCellID returned status code %d", resp.StatusCode)
	}

	var cell openCellIdResponse
	if err := json.NewDecoder(resp.Body).Decode(&cell); err != nil {
		return Location{}, fmt.Errorf("failed to decode OpenCellID response: %w", err)
	}

	lat, err := strconv.ParseFloat(cell.Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed OpenCellID latitude %q: %w", cell.Lat, err)
	}
	lng, err := strconv.ParseFloat(cell.Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed OpenCellID longitude %q: %w", cell.Lon, err)
	}

	p.logger.Debug().
		Float64("latitude", lat).
		Float64("longitude", lng).
		Int("cell_id", p.tower.CellID).
		Msg("Resolved position from OpenCellID")

	return Location{
		Latitude:  lat,
		Longitude: lng,
	}, nil
}

// Close releases provider resources. The OpenCellID provider holds none.
func (p *OpenCellIdProvider) Close() error {
	return nil
}

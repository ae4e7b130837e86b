package location_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/hugohadfield/locomapper-agent/pkg/location"
	"github.com/hugohadfield/locomapper-agent/tests/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// TestIpinfoProvider_GetLocation tests that the loc pair from ipinfo is parsed
// into coordinates and the access token is sent along.
func TestIpinfoProvider_GetLocation(t *testing.T) {
	mockClient := new(mocks.MockHTTPClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Query().Get("token") == "secret-token"
	})).Return(jsonResponse(http.StatusOK, `{"ip":"1.2.3.4","city":"London","loc":"51.5074,-0.1278"}`), nil)

	provider := location.NewIpinfoProviderWithClient(mockClient, "secret-token", zerolog.Nop())
	defer provider.Close()

	loc, err := provider.GetLocation()
	require.NoError(t, err)

	assert.InDelta(t, 51.5074, loc.Latitude, 1e-12)
	assert.InDelta(t, -0.1278, loc.Longitude, 1e-12)
	assert.Zero(t, loc.Altitude)

	mockClient.AssertExpectations(t)
}

// TestIpinfoProvider_GetLocation_MalformedLoc tests that a loc field without
// two coordinates is rejected.
func TestIpinfoProvider_GetLocation_MalformedLoc(t *testing.T) {
	mockClient := new(mocks.MockHTTPClient)
	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusOK, `{"loc":"not-coordinates"}`), nil)

	provider := location.NewIpinfoProviderWithClient(mockClient, "secret-token", zerolog.Nop())
	defer provider.Close()

	_, err := provider.GetLocation()
	assert.Error(t, err)
}

// TestIpinfoProvider_GetLocation_BadStatus tests that non-200 responses
// surface as errors.
func TestIpinfoProvider_GetLocation_BadStatus(t *testing.T) {
	mockClient := new(mocks.MockHTTPClient)
	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusForbidden, `{}`), nil)

	provider := location.NewIpinfoProviderWithClient(mockClient, "bad-token", zerolog.Nop())
	defer provider.Close()

	_, err := provider.GetLocation()
	assert.Error(t, err)
}

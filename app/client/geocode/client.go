package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"refugebot/app/config"
	"time"

	"github.com/samber/do"
)

// ErrUnavailable marks transport or auth failures of the geocoding provider.
// "No match for this address" is a normal outcome, not an error.
var ErrUnavailable = errors.New("geocoder is unavailable")

const (
	defaultBaseURL = "https://maps.googleapis.com"
	requestTimeout = 10 * time.Second

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Result is a successfully resolved address.
type Result struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newClient(cfg, defaultBaseURL), nil
}

func newClient(cfg *config.Config, baseURL string) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve turns a free-text address into coordinates. A nil result with a
// nil error means the provider has no match for the address.
func (c *Client) Resolve(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.cfg.Google.APIKey)

	requestURL := c.baseURL + "/maps/api/geocode/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var response geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrUnavailable, err)
	}

	switch response.Status {
	case statusZeroResults:
		slog.Debug("Geocoder did not recognise address", "address", address)
		return nil, nil
	case statusOK:
		if len(response.Results) == 0 {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("%w: provider status %s", ErrUnavailable, response.Status)
	}

	first := response.Results[0]

	slog.Debug("Geocoder resolved address",
		"address", address,
		"formatted_address", first.FormattedAddress)

	return &Result{
		FormattedAddress: first.FormattedAddress,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
	}, nil
}

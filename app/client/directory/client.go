package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"refugebot/app/config"
	"strings"
	"time"

	"github.com/samber/do"
)

// ErrUnavailable marks transport-level failures of the directory API.
// An empty result set is not an error.
var ErrUnavailable = errors.New("directory is unavailable")

const requestTimeout = 10 * time.Second

type Client struct {
	cfg        *config.Config
	rootURL    string
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return newClient(cfg, cfg.Directory.RootURL), nil
}

func newClient(cfg *config.Config, rootURL string) *Client {
	return &Client{
		cfg:     cfg,
		rootURL: strings.TrimSuffix(rootURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type categoryItem struct {
	Category string `json:"category"`
}

type poiItem struct {
	Name string `json:"name"`
	Geo  struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geo"`
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

// Categories fetches the current vocabulary of interest categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var response itemsResponse[categoryItem]
	if err := c.getJSON(ctx, c.rootURL+"/common", &response); err != nil {
		return nil, err
	}

	result := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		result = append(result, item.Category)
	}

	return result, nil
}

// Search runs a filtered/nearby point-of-interest search and returns the
// matching points keyed by name. Zero matches yields an empty map.
func (c *Client) Search(ctx context.Context, query Query) (map[string]Point, error) {
	requestURL := c.rootURL + "/poi/search?" + query.withDefaults().values().Encode()
	slog.Debug("Searching points of interest", "url", requestURL)

	var response itemsResponse[poiItem]
	if err := c.getJSON(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	result := make(map[string]Point, len(response.Items))
	for _, item := range response.Items {
		if len(item.Geo.Coordinates) < 2 {
			slog.Warn("Point of interest without coordinates", "name", item.Name)
			continue
		}

		result[item.Name] = Point{
			Latitude:  item.Geo.Coordinates[0],
			Longitude: item.Geo.Coordinates[1],
		}
	}

	return result, nil
}

func (c *Client) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrUnavailable, err)
	}

	return nil
}

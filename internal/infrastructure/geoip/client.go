package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mynet/sales/internal/application/geo"
	"github.com/mynet/sales/internal/infrastructure/config"
)

const maxResponseSize = 64 << 10

var (
	// ErrLookupUnavailable indicates the lookup service could not be reached
	ErrLookupUnavailable = errors.New("geoip: lookup service unavailable")
	// ErrLookupFailed indicates the service answered without a location
	ErrLookupFailed = errors.New("geoip: lookup failed")
)

type lookupResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

// Client resolves IP addresses through an ip-api.com compatible JSON endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a lookup client. endpoint holds a %s placeholder for the address.
func NewClient(cfg config.GeoConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup resolves the country of ip
func (c *Client) Lookup(ctx context.Context, ip string) (*geo.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(c.endpoint, url.PathEscape(ip)), nil)
	if err != nil {
		return nil, fmt.Errorf("geoip: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("geoip: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrLookupFailed, resp.StatusCode)
	}

	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("geoip: failed to parse response: %w", err)
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("%w: status %q %s", ErrLookupFailed, out.Status, out.Message)
	}
	return &geo.Location{Country: out.Country, CountryCode: out.CountryCode}, nil
}

var _ geo.Resolver = (*Client)(nil)

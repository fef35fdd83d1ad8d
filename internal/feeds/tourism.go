package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skyfare/internal/types"
)

const (
	DefaultTourismURL = "https://api.worldbank.org"
	arrivalsIndicator = "ST.INT.ARVL"
)

// CountryCoder resolves a country name to its ISO code. Satisfied by maps.GeocodeService.
type CountryCoder interface {
	CountryCode(ctx context.Context, country string) (string, error)
}

// TourismClient reads international tourist arrivals from the World Bank indicators API.
type TourismClient struct {
	baseURL string
	codes   CountryCoder
	http    *http.Client
}

// NewTourismClient builds the client. codes may be nil, in which case the country name is sent as is.
func NewTourismClient(baseURL string, codes CountryCoder, timeout time.Duration) *TourismClient {
	if baseURL == "" {
		baseURL = DefaultTourismURL
	}
	return &TourismClient{baseURL: baseURL, codes: codes, http: newHTTPClient(timeout)}
}

type indicatorPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Arrivals returns the most recent non-null yearly figure, or nil when the series has none.
func (c *TourismClient) Arrivals(ctx context.Context, country string) (*float64, error) {
	code := c.countryCode(ctx, country)
	endpoint := fmt.Sprintf("%s/v2/country/%s/indicator/%s?format=json",
		c.baseURL, url.PathEscape(code), arrivalsIndicator)

	var raw []json.RawMessage
	if err := getJSON(ctx, c.http, endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("arrivals for %s: %w", country, err)
	}
	// The payload is [pagination, points]; errors come back as a lone message object.
	if len(raw) < 2 {
		return nil, fmt.Errorf("%w: arrivals for %s: unexpected payload", types.ErrLookup, country)
	}
	var points []indicatorPoint
	if err := json.Unmarshal(raw[1], &points); err != nil {
		return nil, fmt.Errorf("%w: arrivals for %s: %v", types.ErrLookup, country, err)
	}
	// Points are ordered newest first.
	for _, p := range points {
		if p.Value != nil {
			v := *p.Value
			return &v, nil
		}
	}
	return nil, nil
}

func (c *TourismClient) countryCode(ctx context.Context, country string) string {
	if c.codes == nil {
		return strings.TrimSpace(country)
	}
	code, err := c.codes.CountryCode(ctx, country)
	if err != nil || code == "" {
		slog.Warn("country code lookup failed; using name", "country", country, "error", err)
		return strings.TrimSpace(country)
	}
	return code
}

package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"skyfare/internal/types"
)

const DefaultHolidaysURL = "https://api.api-ninjas.com"

// HolidayClient reads public holidays from the API-Ninjas holidays endpoint.
type HolidayClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHolidayClient(baseURL, apiKey string, timeout time.Duration) *HolidayClient {
	if baseURL == "" {
		baseURL = DefaultHolidaysURL
	}
	return &HolidayClient{baseURL: baseURL, apiKey: apiKey, http: newHTTPClient(timeout)}
}

type holiday struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Type string `json:"type"`
}

// Holidays returns the public holiday dates of country.
func (c *HolidayClient) Holidays(ctx context.Context, country string) ([]time.Time, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: holidays api key not configured", types.ErrLookup)
	}
	q := url.Values{}
	q.Set("country", country)
	q.Set("type", "public_holiday")

	var list []holiday
	header := http.Header{"X-Api-Key": []string{c.apiKey}}
	if err := getJSON(ctx, c.http, c.baseURL+"/v1/holidays?"+q.Encode(), header, &list); err != nil {
		return nil, fmt.Errorf("holidays for %s: %w", country, err)
	}

	days := make([]time.Time, 0, len(list))
	for _, h := range list {
		d, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: holiday %q has bad date %q", types.ErrLookup, h.Name, h.Date)
		}
		days = append(days, d)
	}
	return days, nil
}

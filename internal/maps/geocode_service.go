package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"skyfare/internal/types"
)

// GeocodeService resolves country names through the Google Maps Geocoding API.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a new GeocodeService with the given API Key.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// LatLng returns the representative coordinates of a country.
func (s *GeocodeService) LatLng(ctx context.Context, country string) (types.Point, error) {
	res, err := s.geocode(ctx, country)
	if err != nil {
		return types.Point{}, err
	}
	loc := res.Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// CountryCode returns the ISO 3166-1 alpha-2 code of a country.
func (s *GeocodeService) CountryCode(ctx context.Context, country string) (string, error) {
	res, err := s.geocode(ctx, country)
	if err != nil {
		return "", err
	}
	for _, c := range res.AddressComponents {
		for _, t := range c.Types {
			if t == "country" {
				return c.ShortName, nil
			}
		}
	}
	return "", fmt.Errorf("no country component for %q", country)
}

func (s *GeocodeService) geocode(ctx context.Context, country string) (maps.GeocodingResult, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  country,
		Language: "en",
	})
	if err != nil {
		return maps.GeocodingResult{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return maps.GeocodingResult{}, fmt.Errorf("no geocoding result for %q", country)
	}
	return results[0], nil
}

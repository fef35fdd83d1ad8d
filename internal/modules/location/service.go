// README: GeoDistance service: country coordinates (memoized) and great-circle distance.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"skyfare/internal/types"
)

type Service struct {
	geocoder Geocoder
	store    *Store

	mu     sync.Mutex
	coords map[string]types.Point
}

// NewService builds the distance service. store may be nil when Redis is not configured.
func NewService(geocoder Geocoder, store *Store) *Service {
	return &Service{
		geocoder: geocoder,
		store:    store,
		coords:   make(map[string]types.Point),
	}
}

// Locate resolves a country to its representative coordinates. Results are memoized
// for the life of the process.
func (s *Service) Locate(ctx context.Context, country string) (types.Point, error) {
	key := normalizeCountry(country)
	if key == "" {
		return types.Point{}, fmt.Errorf("%w: empty country", types.ErrValidation)
	}

	s.mu.Lock()
	p, ok := s.coords[key]
	s.mu.Unlock()
	if ok {
		return p, nil
	}

	if s.store != nil {
		cached, found, err := s.store.GetCoords(ctx, key)
		if err != nil {
			slog.Warn("coordinate cache read failed", "country", country, "error", err)
		} else if found {
			s.remember(key, cached)
			return cached, nil
		}
	}

	p, err := s.geocoder.LatLng(ctx, country)
	if err != nil {
		return types.Point{}, fmt.Errorf("%w: locating %q: %v", types.ErrLookup, country, err)
	}

	if s.store != nil {
		if err := s.store.SetCoords(ctx, key, p); err != nil {
			slog.Warn("coordinate cache write failed", "country", country, "error", err)
		}
	}
	s.remember(key, p)
	return p, nil
}

// Distance returns the great-circle distance in km between two countries.
func (s *Service) Distance(ctx context.Context, countryA, countryB string) (float64, error) {
	a, err := s.Locate(ctx, countryA)
	if err != nil {
		return 0, err
	}
	b, err := s.Locate(ctx, countryB)
	if err != nil {
		return 0, err
	}
	return haversineKm(a.Lat, a.Lng, b.Lat, b.Lng), nil
}

func (s *Service) remember(key string, p types.Point) {
	s.mu.Lock()
	s.coords[key] = p
	s.mu.Unlock()
}

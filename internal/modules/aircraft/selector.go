package aircraft

import (
	"context"
	"fmt"
	"math"
	"strings"

	"skyfare/internal/types"
)

// DistanceSource is satisfied by location.Service.
type DistanceSource interface {
	Distance(ctx context.Context, countryA, countryB string) (float64, error)
}

type Selector struct {
	distances DistanceSource
}

func NewSelector(distances DistanceSource) *Selector {
	return &Selector{distances: distances}
}

// ClassFor returns the smallest-range class that covers distanceKm, or the
// longest-range class when no class covers it.
func ClassFor(distanceKm float64) Class {
	for _, c := range Catalog {
		if distanceKm <= c.RangeKm {
			return c
		}
	}
	return Catalog[len(Catalog)-1]
}

// StopsFor is the number of intermediate stops needed to fly distanceKm with class c.
func StopsFor(distanceKm float64, c Class) int {
	if distanceKm <= 0 || c.RangeKm <= 0 {
		return 0
	}
	stops := int(math.Ceil(distanceKm/c.RangeKm)) - 1
	if stops < 0 {
		return 0
	}
	return stops
}

// SelectAircraft computes the route distance and the aircraft class that flies it.
func (s *Selector) SelectAircraft(ctx context.Context, from, to string) (float64, Class, error) {
	d, err := s.routeDistance(ctx, from, to)
	if err != nil {
		return 0, Class{}, err
	}
	return d, ClassFor(d), nil
}

// EstimateStops returns the stop count for the aircraft selected on the route.
func (s *Selector) EstimateStops(ctx context.Context, from, to string) (int, error) {
	d, c, err := s.SelectAircraft(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return StopsFor(d, c), nil
}

// Select returns distance, aircraft and stops in one call.
func (s *Selector) Select(ctx context.Context, from, to string) (Selection, error) {
	d, c, err := s.SelectAircraft(ctx, from, to)
	if err != nil {
		return Selection{}, err
	}
	return Selection{From: from, To: to, DistanceKm: d, Aircraft: c, Stops: StopsFor(d, c)}, nil
}

func (s *Selector) routeDistance(ctx context.Context, from, to string) (float64, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, fmt.Errorf("%w: origin and destination are required", types.ErrValidation)
	}
	if strings.EqualFold(from, to) {
		return 0, fmt.Errorf("%w: origin and destination are the same country (%s)", types.ErrValidation, from)
	}
	d, err := s.distances.Distance(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: zero distance between %s and %s", types.ErrValidation, from, to)
	}
	return d, nil
}

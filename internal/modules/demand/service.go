// README: DemandSignals service. Feed failures degrade to neutral signals and are logged.
package demand

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"skyfare/internal/modules/flight"
)

// defaultLoadFactor applies when the flight has no capacity to measure against.
const defaultLoadFactor = 0.5

type Service struct {
	holidays HolidayProvider
	tourism  TourismProvider
}

// NewService accepts nil providers; the matching signal is then always false.
func NewService(holidays HolidayProvider, tourism TourismProvider) *Service {
	return &Service{holidays: holidays, tourism: tourism}
}

// LoadFactor is the share of sold seats.
func LoadFactor(f *flight.Flight) float64 {
	if f.MaxSeats <= 0 {
		return defaultLoadFactor
	}
	return float64(f.SoldSeats) / float64(f.MaxSeats)
}

// Signals derives every demand indicator for a ticket. The holiday and tourism
// lookups run concurrently; only context cancellation is returned as an error.
func (s *Service) Signals(ctx context.Context, t flight.TicketRequest) (Signals, error) {
	f := t.Flight
	sig := Signals{
		LoadFactor:      LoadFactor(f),
		Weekend:         t.IsWeekend(),
		AdvancedBooking: t.IsAdvancedBooking(),
		LateBooking:     t.IsLateBooking(),
		Tourism:         TierNoData,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sig.Holiday = s.IsHoliday(gctx, f.To, f.Departure, f.LastDay())
		return nil
	})
	g.Go(func() error {
		sig.Tourism = s.TourismTier(gctx, f.To)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Signals{}, err
	}

	sig.TouristHotspot = sig.Tourism.IsHotspot()
	return sig, nil
}

// IsHoliday reports whether a public holiday of country falls within [from, to], by calendar date.
func (s *Service) IsHoliday(ctx context.Context, country string, from, to time.Time) bool {
	if s.holidays == nil {
		return false
	}
	days, err := s.holidays.Holidays(ctx, country)
	if err != nil {
		slog.Warn("holiday lookup failed; assuming no holiday", "country", country, "error", err)
		return false
	}
	lo, hi := civilDate(from), civilDate(to)
	for _, d := range days {
		day := civilDate(d)
		if !day.Before(lo) && !day.After(hi) {
			return true
		}
	}
	return false
}

// TourismTier classifies country; feed failures yield NO_DATA.
func (s *Service) TourismTier(ctx context.Context, country string) Tier {
	if s.tourism == nil {
		return TierNoData
	}
	arrivals, err := s.tourism.Arrivals(ctx, country)
	if err != nil {
		slog.Warn("tourism lookup failed; assuming no data", "country", country, "error", err)
		return TierNoData
	}
	return ClassifyTourism(arrivals)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// README: Flight planning: route + dates -> aircraft, distance, stops and seat base prices.
package flight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/settings"
	"skyfare/internal/types"
)

// AircraftPlanner is satisfied by aircraft.Selector.
type AircraftPlanner interface {
	Select(ctx context.Context, from, to string) (aircraft.Selection, error)
}

type PlanRequest struct {
	From      string
	To        string
	Departure time.Time
	Return    *time.Time
	Airline   string
}

type Service struct {
	planner  AircraftPlanner
	repo     Repository
	settings settings.Source
	airlines Registry
	now      func() time.Time
}

func NewService(planner AircraftPlanner, repo Repository, source settings.Source, airlines Registry) *Service {
	if airlines == nil {
		airlines = DefaultRegistry()
	}
	return &Service{
		planner:  planner,
		repo:     repo,
		settings: source,
		airlines: airlines,
		now:      time.Now,
	}
}

// SeatFactor returns the configured price multiplier for a seat type.
func SeatFactor(cfg settings.Configuration, s SeatType) float64 {
	switch s {
	case PremiumEconomy:
		return cfg.PremiumEconomyFactor
	case Business:
		return cfg.BusinessFactor
	case First:
		return cfg.FirstClassFactor
	default:
		return cfg.EconomyFactor
	}
}

// SeatBasePrices prices every seat type for an airline.
func SeatBasePrices(cfg settings.Configuration, airline Airline) map[SeatType]float64 {
	prices := make(map[SeatType]float64, len(SeatTypes))
	for _, s := range SeatTypes {
		prices[s] = cfg.BasePrice * SeatFactor(cfg, s) * airline.Efficiency
	}
	return prices
}

// Build assembles a validated flight without storing it.
func (s *Service) Build(ctx context.Context, req PlanRequest) (*Flight, error) {
	req.From, req.To = strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if req.Departure.IsZero() {
		return nil, fmt.Errorf("%w: departure date is required", types.ErrValidation)
	}
	departure := dateOnly(req.Departure)
	ret := datePtr(req.Return)
	if ret != nil && ret.Before(departure) {
		return nil, fmt.Errorf("%w: return date must not precede departure date", types.ErrValidation)
	}

	airline, err := s.airlines.Lookup(req.Airline)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	sel, err := s.planner.Select(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}

	f := &Flight{
		ID:             types.ID(uuid.NewString()),
		From:           req.From,
		To:             req.To,
		Departure:      departure,
		Return:         ret,
		Airline:        airline,
		Aircraft:       sel.Aircraft,
		DistanceKm:     sel.DistanceKm,
		MaxSeats:       sel.Aircraft.Capacity,
		SeatBasePrices: SeatBasePrices(cfg, airline),
		Stops:          sel.Stops,
		CreatedAt:      s.now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Plan builds a flight and adds it to the repository.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*Flight, error) {
	f, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, f); err != nil {
		return nil, err
	}
	slog.Info("flight planned",
		"flight_id", f.ID,
		"route", f.From+"-"+f.To,
		"aircraft", f.Aircraft.ID,
		"distance_km", f.DistanceKm,
		"stops", f.Stops,
	)
	return f, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Flight, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]*Flight, error) {
	if strings.TrimSpace(q.From) == "" || strings.TrimSpace(q.To) == "" || q.Departure.IsZero() {
		return nil, fmt.Errorf("%w: route and departure date are required", types.ErrValidation)
	}
	q.From, q.To = strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	return s.repo.FindByRouteAndDates(ctx, q)
}

// Book records one sold seat on the flight.
func (s *Service) Book(ctx context.Context, id types.ID) (*Flight, error) {
	f, err := s.repo.RecordSale(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Info("seat sold", "flight_id", id, "sold", f.SoldSeats, "max", f.MaxSeats)
	return f, nil
}

// Release gives back one seat, used when a sold ticket is cancelled.
func (s *Service) Release(ctx context.Context, id types.ID) (*Flight, error) {
	f, err := s.repo.ReleaseSale(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Info("seat released", "flight_id", id, "sold", f.SoldSeats, "max", f.MaxSeats)
	return f, nil
}

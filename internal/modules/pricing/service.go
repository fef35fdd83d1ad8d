// README: Pricing service: gathers demand signals and settings, then computes the quote.
package pricing

import (
	"context"

	"skyfare/internal/modules/demand"
	"skyfare/internal/modules/flight"
	"skyfare/internal/settings"
)

// SignalSource is satisfied by demand.Service.
type SignalSource interface {
	Signals(ctx context.Context, t flight.TicketRequest) (demand.Signals, error)
}

type Service struct {
	settings settings.Source
	signals  SignalSource
}

func NewService(source settings.Source, signals SignalSource) *Service {
	return &Service{settings: source, signals: signals}
}

// Quote prices a ticket with an explicit configuration.
func (s *Service) Quote(ctx context.Context, t flight.TicketRequest, cfg settings.Configuration) (Quote, error) {
	if err := t.Validate(); err != nil {
		return Quote{}, err
	}
	sig, err := s.signals.Signals(ctx, t)
	if err != nil {
		return Quote{}, err
	}
	return Compute(t, cfg, sig)
}

// Price returns only the rounded price of Quote.
func (s *Service) Price(ctx context.Context, t flight.TicketRequest, cfg settings.Configuration) (float64, error) {
	q, err := s.Quote(ctx, t, cfg)
	if err != nil {
		return 0, err
	}
	return q.Price.Float64(), nil
}

// Estimate loads the configuration once and quotes the ticket.
func (s *Service) Estimate(ctx context.Context, t flight.TicketRequest) (Quote, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return Quote{}, err
	}
	return s.Quote(ctx, t, cfg)
}

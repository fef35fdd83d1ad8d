// README: Ticket service sells seats at a quoted price and handles cancellation.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/types"
)

// Store persists tickets and their state events.
type Store interface {
	Create(ctx context.Context, t *Ticket) error
	Get(ctx context.Context, id types.ID) (*Ticket, error)
	ListByFlight(ctx context.Context, flightID types.ID) ([]*Ticket, error)
	// UpdateStatus applies the transition only if the ticket is still at from/version.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason string) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
}

// SeatBooker is satisfied by flight.Service.
type SeatBooker interface {
	Book(ctx context.Context, id types.ID) (*flight.Flight, error)
	Release(ctx context.Context, id types.ID) (*flight.Flight, error)
}

type Service struct {
	store Store
	seats SeatBooker
	now   func() time.Time
}

func NewService(store Store, seats SeatBooker) *Service {
	return &Service{store: store, seats: seats, now: time.Now}
}

// Sell records one sold seat and issues a ticket at the quoted price. The seat
// is given back if the ticket cannot be stored.
func (s *Service) Sell(ctx context.Context, req flight.TicketRequest, q pricing.Quote) (*Ticket, *flight.Flight, error) {
	if req.Flight == nil {
		return nil, nil, fmt.Errorf("%w: ticket has no flight", types.ErrValidation)
	}
	if q.FlightID != req.Flight.ID {
		return nil, nil, fmt.Errorf("%w: quote is for flight %s, not %s", types.ErrValidation, q.FlightID, req.Flight.ID)
	}

	f, err := s.seats.Book(ctx, req.Flight.ID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	t := &Ticket{
		ID:             types.ID(uuid.NewString()),
		FlightID:       f.ID,
		Seat:           req.Seat,
		Price:          q.Price,
		Student:        req.Student,
		ExtraLuggageKg: req.ExtraLuggageKg,
		SpecialOffers:  offerNames(req.SpecialOffers),
		Status:         StatusIssued,
		ReservedAt:     req.ReservedAt,
		IssuedAt:       now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		if _, relErr := s.seats.Release(ctx, f.ID); relErr != nil {
			slog.Error("seat release after failed ticket insert", "flight_id", f.ID, "error", relErr)
		}
		return nil, nil, err
	}
	s.appendEvent(ctx, &Event{TicketID: t.ID, FromStatus: StatusNone, ToStatus: StatusIssued, CreatedAt: now})
	slog.Info("ticket issued", "ticket_id", t.ID, "flight_id", f.ID, "seat", t.Seat, "price", t.Price.Amount.String())
	return t, f, nil
}

type CancelCommand struct {
	TicketID types.ID
	Reason   string
}

// Cancel moves an issued ticket to cancelled and gives its seat back.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) (*Ticket, error) {
	t, err := s.store.Get(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(t.Status, StatusCancelled) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, t.ID, t.Status, StatusCancelled, t.StatusVersion, cmd.Reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	if _, err := s.seats.Release(ctx, t.FlightID); err != nil {
		// Put the ticket back so the seat is never lost to a half-done cancel.
		if _, rbErr := s.store.UpdateStatus(ctx, t.ID, StatusCancelled, t.Status, t.StatusVersion+1, ""); rbErr != nil {
			slog.Error("ticket cancel rollback failed", "ticket_id", t.ID, "error", rbErr)
		}
		return nil, fmt.Errorf("releasing seat for ticket %s: %w", t.ID, err)
	}
	s.appendEvent(ctx, &Event{
		TicketID:   t.ID,
		FromStatus: t.Status,
		ToStatus:   StatusCancelled,
		Reason:     cmd.Reason,
		CreatedAt:  s.now(),
	})
	return s.store.Get(ctx, t.ID)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Ticket, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByFlight(ctx context.Context, flightID types.ID) ([]*Ticket, error) {
	return s.store.ListByFlight(ctx, flightID)
}

// appendEvent is best effort; the ticket row is the source of truth.
func (s *Service) appendEvent(ctx context.Context, e *Event) {
	if err := s.store.AppendEvent(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("ticket event not recorded", "ticket_id", e.TicketID, "to", e.ToStatus, "error", err)
	}
}

func offerNames(offers []flight.SpecialOffer) []string {
	names := make([]string, 0, len(offers))
	for _, o := range offers {
		names = append(names, o.Name)
	}
	return names
}

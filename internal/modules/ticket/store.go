// README: Ticket store backed by PostgreSQL.
package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skyfare/internal/modules/flight"
	"skyfare/internal/types"
)

const ticketColumns = `id, flight_id, seat_type, price, currency, student, extra_luggage_kg,
        special_offers, status, status_version, reserved_at, issued_at, cancelled_at, cancel_reason`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, t *Ticket) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO tickets (`+ticketColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		string(t.ID),
		string(t.FlightID),
		string(t.Seat),
		t.Price.Amount,
		t.Price.Currency,
		t.Student,
		t.ExtraLuggageKg,
		t.SpecialOffers,
		string(t.Status),
		t.StatusVersion,
		t.ReservedAt,
		t.IssuedAt,
		t.CancelledAt,
		t.CancelReason,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Ticket, error) {
	row := s.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, string(id))
	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: ticket %s", types.ErrNotFound, id)
	}
	return t, err
}

func (s *PostgresStore) ListByFlight(ctx context.Context, flightID types.ID) ([]*Ticket, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+ticketColumns+`
        FROM tickets
        WHERE flight_id = $1
        ORDER BY issued_at, id`, string(flightID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason string) (bool, error) {
	var r *string
	if reason != "" {
		r = &reason
	}
	tag, err := s.db.Exec(ctx, `
        UPDATE tickets
        SET status = $1,
            status_version = status_version + 1,
            cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE NULL END,
            cancel_reason = CASE WHEN $1 = 'cancelled' THEN COALESCE($2, cancel_reason) ELSE NULL END
        WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		r,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) AppendEvent(ctx context.Context, e *Event) error {
	var reason *string
	if e.Reason != "" {
		reason = &e.Reason
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO ticket_state_events (ticket_id, from_status, to_status, reason, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		string(e.TicketID),
		string(e.FromStatus),
		string(e.ToStatus),
		reason,
		e.CreatedAt,
	)
	return err
}

func scanTicket(row pgx.Row) (*Ticket, error) {
	var t Ticket
	var id, flightID, seat, status string
	err := row.Scan(
		&id, &flightID, &seat, &t.Price.Amount, &t.Price.Currency, &t.Student, &t.ExtraLuggageKg,
		&t.SpecialOffers, &status, &t.StatusVersion, &t.ReservedAt, &t.IssuedAt, &t.CancelledAt, &t.CancelReason,
	)
	if err != nil {
		return nil, err
	}
	t.ID = types.ID(id)
	t.FlightID = types.ID(flightID)
	t.Seat = flight.SeatType(seat)
	t.Status = Status(status)
	return &t, nil
}

// README: Flight repository backed by PostgreSQL.
package flight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const flightColumns = `
    id, from_country, to_country, departure_date, return_date,
    airline, airline_efficiency, aircraft_class, distance_km,
    max_seats, sold_seats, seat_prices, stop_count, created_at`

func (s *PostgresStore) Add(ctx context.Context, f *Flight) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO flights (`+flightColumns+`
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9,
            $10, $11, $12, $13, $14
        )`,
		string(f.ID), f.From, f.To, f.Departure, f.Return,
		f.Airline.Name, f.Airline.Efficiency, string(f.Aircraft.ID), f.DistanceKm,
		f.MaxSeats, f.SoldSeats, f.SeatBasePrices, f.Stops, f.CreatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (*Flight, error) {
	row := s.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, string(id))
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: flight %s", types.ErrNotFound, id)
	}
	return f, err
}

func (s *PostgresStore) FindByRouteAndDates(ctx context.Context, q SearchQuery) ([]*Flight, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+flightColumns+`
        FROM flights
        WHERE lower(from_country) = lower($1)
          AND lower(to_country) = lower($2)
          AND departure_date = $3
          AND return_date IS NOT DISTINCT FROM $4
        ORDER BY created_at, id`,
		q.From, q.To, dateOnly(q.Departure), datePtr(q.Return),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// RecordSale relies on a conditional update so concurrent sales never oversell.
func (s *PostgresStore) RecordSale(ctx context.Context, id types.ID) (*Flight, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE flights
        SET sold_seats = sold_seats + 1
        WHERE id = $1 AND sold_seats < max_seats
        RETURNING `+flightColumns, string(id))
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrSoldOut
	}
	return f, err
}

func (s *PostgresStore) ReleaseSale(ctx context.Context, id types.ID) (*Flight, error) {
	row := s.db.QueryRow(ctx, `
        UPDATE flights
        SET sold_seats = sold_seats - 1
        WHERE id = $1 AND sold_seats > 0
        RETURNING `+flightColumns, string(id))
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: flight %s has no sold seats", types.ErrValidation, id)
	}
	return f, err
}

func scanFlight(row pgx.Row) (*Flight, error) {
	var f Flight
	var id, class string
	err := row.Scan(
		&id, &f.From, &f.To, &f.Departure, &f.Return,
		&f.Airline.Name, &f.Airline.Efficiency, &class, &f.DistanceKm,
		&f.MaxSeats, &f.SoldSeats, &f.SeatBasePrices, &f.Stops, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.ID = types.ID(id)
	if f.Aircraft, err = aircraft.Lookup(aircraft.ClassID(class)); err != nil {
		return nil, err
	}
	return &f, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}

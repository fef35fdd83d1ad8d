// README: Ticket aggregate and status definitions.
package ticket

import (
	"errors"
	"time"

	"skyfare/internal/modules/flight"
	"skyfare/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusIssued    Status = "issued"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidState = errors.New("invalid ticket state transition")
	ErrConflict     = errors.New("ticket state conflict")
)

// Ticket is a sold seat. Price is frozen at the quote taken when it was sold.
type Ticket struct {
	ID             types.ID        `json:"id"`
	FlightID       types.ID        `json:"flight_id"`
	Seat           flight.SeatType `json:"seat"`
	Price          types.Money     `json:"price"`
	Student        bool            `json:"student"`
	ExtraLuggageKg float64         `json:"extra_luggage_kg"`
	SpecialOffers  []string        `json:"special_offers"`
	Status         Status          `json:"status"`
	StatusVersion  int             `json:"status_version"`
	ReservedAt     time.Time       `json:"reserved_at"`
	IssuedAt       time.Time       `json:"issued_at"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason   *string         `json:"cancel_reason,omitempty"`
}

type Event struct {
	ID         int64
	TicketID   types.ID
	FromStatus Status
	ToStatus   Status
	Reason     string
	CreatedAt  time.Time
}

// AllowedTransitions is the ticket state flow.
var AllowedTransitions = map[Status][]Status{
	StatusNone:   {StatusIssued},
	StatusIssued: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (t *Ticket) clone() *Ticket {
	cp := *t
	cp.SpecialOffers = append([]string(nil), t.SpecialOffers...)
	if t.CancelledAt != nil {
		at := *t.CancelledAt
		cp.CancelledAt = &at
	}
	if t.CancelReason != nil {
		r := *t.CancelReason
		cp.CancelReason = &r
	}
	return &cp
}

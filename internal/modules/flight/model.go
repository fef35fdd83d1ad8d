// README: Flight aggregate, seat types and ticket requests.
package flight

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/types"
)

// ErrSoldOut is returned when a seat sale would exceed the aircraft capacity.
var ErrSoldOut = errors.New("flight sold out")

// DateLayout is the calendar date format used by requests and summaries.
const DateLayout = "2006-01-02"

type SeatType string

const (
	Economy        SeatType = "economy"
	PremiumEconomy SeatType = "premium_economy"
	Business       SeatType = "business"
	First          SeatType = "first"
)

// SeatTypes lists every seat type, cheapest first.
var SeatTypes = []SeatType{Economy, PremiumEconomy, Business, First}

var seatNames = map[SeatType]string{
	Economy:        "Economy",
	PremiumEconomy: "Premium Economy",
	Business:       "Business",
	First:          "First",
}

// ParseSeatType accepts the identifier or the display name, in any case.
func ParseSeatType(s string) (SeatType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch key {
	case "economy", "economic":
		return Economy, nil
	case "premium_economy", "premiumeconomy":
		return PremiumEconomy, nil
	case "business":
		return Business, nil
	case "first", "first_class":
		return First, nil
	}
	return "", fmt.Errorf("%w: unknown seat type %q", types.ErrValidation, s)
}

func (s SeatType) String() string {
	if name, ok := seatNames[s]; ok {
		return name
	}
	return string(s)
}

func (s SeatType) Valid() bool {
	_, ok := seatNames[s]
	return ok
}

// IsPremium reports whether the seat is sold in a premium cabin, judged by its
// display name.
func (s SeatType) IsPremium() bool {
	name := strings.ToLower(s.String())
	return strings.Contains(name, "first") ||
		strings.Contains(name, "business") ||
		strings.Contains(name, "premium")
}

type Flight struct {
	ID             types.ID             `json:"id"`
	From           string               `json:"from"`
	To             string               `json:"to"`
	Departure      time.Time            `json:"departure"`
	Return         *time.Time           `json:"return,omitempty"`
	Airline        Airline              `json:"airline"`
	Aircraft       aircraft.Class       `json:"aircraft"`
	DistanceKm     float64              `json:"distance_km"`
	MaxSeats       int                  `json:"max_seats"`
	SoldSeats      int                  `json:"sold_seats"`
	SeatBasePrices map[SeatType]float64 `json:"seat_base_prices"`
	Stops          int                  `json:"stops"`
	CreatedAt      time.Time            `json:"created_at"`
}

func (f *Flight) IsRoundtrip() bool {
	return f.Return != nil
}

// LastDay is the return date, or the departure date for one-way flights.
func (f *Flight) LastDay() time.Time {
	if f.Return != nil {
		return *f.Return
	}
	return f.Departure
}

func (f *Flight) SeatsLeft() int {
	return f.MaxSeats - f.SoldSeats
}

// Validate checks the flight invariants.
func (f *Flight) Validate() error {
	switch {
	case strings.TrimSpace(f.From) == "" || strings.TrimSpace(f.To) == "":
		return fmt.Errorf("%w: origin and destination are required", types.ErrValidation)
	case strings.EqualFold(strings.TrimSpace(f.From), strings.TrimSpace(f.To)):
		return fmt.Errorf("%w: cannot fly within the same country", types.ErrValidation)
	case f.Return != nil && f.Return.Before(f.Departure):
		return fmt.Errorf("%w: return date must not precede departure date", types.ErrValidation)
	case f.DistanceKm < 0:
		return fmt.Errorf("%w: negative distance", types.ErrValidation)
	case f.SoldSeats < 0 || f.SoldSeats > f.MaxSeats:
		return fmt.Errorf("%w: sold seats %d outside [0, %d]", types.ErrValidation, f.SoldSeats, f.MaxSeats)
	case f.Stops != aircraft.StopsFor(f.DistanceKm, f.Aircraft):
		return fmt.Errorf("%w: stop count %d inconsistent with %s range", types.ErrValidation, f.Stops, f.Aircraft.Name)
	}
	return nil
}

// Summary is a one-line human readable description of the flight.
func (f *Flight) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flight from %s to %s departing on %s", f.From, f.To, f.Departure.Format(DateLayout))
	if f.Return != nil {
		fmt.Fprintf(&b, " returning on %s", f.Return.Format(DateLayout))
	}
	fmt.Fprintf(&b, " via %s with %d stop", f.Airline.Name, f.Stops)
	if f.Stops != 1 {
		b.WriteString("s")
	}
	return b.String()
}

func (f *Flight) clone() *Flight {
	c := *f
	if f.Return != nil {
		r := *f.Return
		c.Return = &r
	}
	c.SeatBasePrices = make(map[SeatType]float64, len(f.SeatBasePrices))
	for k, v := range f.SeatBasePrices {
		c.SeatBasePrices[k] = v
	}
	return &c
}

// SpecialOffer references a named discount configured in the pricing settings.
type SpecialOffer struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

type TicketRequest struct {
	ReservedAt     time.Time
	Flight         *Flight
	Seat           SeatType
	ExtraLuggageKg float64
	SpecialOffers  []SpecialOffer
	Student        bool
}

func (t TicketRequest) Validate() error {
	switch {
	case t.Flight == nil:
		return fmt.Errorf("%w: ticket has no flight", types.ErrValidation)
	case !t.Seat.Valid():
		return fmt.Errorf("%w: unknown seat type %q", types.ErrValidation, t.Seat)
	case t.ExtraLuggageKg < 0:
		return fmt.Errorf("%w: negative extra luggage", types.ErrValidation)
	case t.ReservedAt.IsZero():
		return fmt.Errorf("%w: reservation time is required", types.ErrValidation)
	}
	return nil
}

// IsWeekend reports whether the reservation was made on a Saturday or Sunday.
func (t TicketRequest) IsWeekend() bool {
	wd := t.ReservedAt.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysBeforeDeparture counts whole days from the reservation wall clock to
// midnight of the departure date, rounding toward negative infinity.
func (t TicketRequest) DaysBeforeDeparture() int {
	r := t.ReservedAt
	wall := time.Date(r.Year(), r.Month(), r.Day(), r.Hour(), r.Minute(), r.Second(), r.Nanosecond(), time.UTC)
	d := t.Flight.Departure
	dep := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Floor(dep.Sub(wall).Hours() / 24))
}

func (t TicketRequest) IsAdvancedBooking() bool {
	return t.DaysBeforeDeparture() > 60
}

func (t TicketRequest) IsLateBooking() bool {
	return !t.IsAdvancedBooking()
}

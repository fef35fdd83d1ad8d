package flight

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/types"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datep(s string) *time.Time {
	t := date(s)
	return &t
}

func sampleFlight() *Flight {
	long, _ := aircraft.Lookup(aircraft.Long)
	return &Flight{
		ID:         "f-1",
		From:       "France",
		To:         "Japan",
		Departure:  date("2025-07-01"),
		Return:     datep("2025-07-15"),
		Airline:    Airline{Name: DefaultAirline, Efficiency: 1},
		Aircraft:   long,
		DistanceKm: 9700,
		MaxSeats:   long.Capacity,
		SeatBasePrices: map[SeatType]float64{
			Economy: 200, PremiumEconomy: 300, Business: 500, First: 800,
		},
		Stops: 0,
	}
}

func TestParseSeatType(t *testing.T) {
	tests := map[string]SeatType{
		"Economy":         Economy,
		"economic":        Economy,
		"Premium Economy": PremiumEconomy,
		"premium-economy": PremiumEconomy,
		"BUSINESS":        Business,
		"first":           First,
		"first class":     First,
	}
	for in, want := range tests {
		got, err := ParseSeatType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSeatType("cargo")
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestSeatType_IsPremium(t *testing.T) {
	assert.False(t, Economy.IsPremium())
	assert.True(t, PremiumEconomy.IsPremium())
	assert.True(t, Business.IsPremium())
	assert.True(t, First.IsPremium())
}

func TestFlight_Validate(t *testing.T) {
	assert.NoError(t, sampleFlight().Validate())

	tests := []struct {
		name   string
		mutate func(f *Flight)
	}{
		{"same country", func(f *Flight) { f.To = " france" }},
		{"return before departure", func(f *Flight) { f.Return = datep("2025-06-30") }},
		{"negative distance", func(f *Flight) { f.DistanceKm = -1 }},
		{"oversold", func(f *Flight) { f.SoldSeats = f.MaxSeats + 1 }},
		{"inconsistent stops", func(f *Flight) { f.Stops = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleFlight()
			tt.mutate(f)
			assert.True(t, errors.Is(f.Validate(), types.ErrValidation))
		})
	}
}

func TestFlight_Summary(t *testing.T) {
	f := sampleFlight()
	assert.Equal(t,
		"Flight from France to Japan departing on 2025-07-01 returning on 2025-07-15 via SkyHigh Airline with 0 stops",
		f.Summary())

	f.Return = nil
	f.Stops = 1
	assert.Equal(t, "Flight from France to Japan departing on 2025-07-01 via SkyHigh Airline with 1 stop", f.Summary())
}

func TestTicket_IsWeekend(t *testing.T) {
	saturday := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	assert.True(t, TicketRequest{ReservedAt: saturday}.IsWeekend())
	assert.True(t, TicketRequest{ReservedAt: saturday.AddDate(0, 0, 1)}.IsWeekend())
	assert.False(t, TicketRequest{ReservedAt: monday}.IsWeekend())
}

func TestTicket_AdvancedBooking(t *testing.T) {
	f := sampleFlight() // departs 2025-07-01

	tests := []struct {
		name       string
		reserved   time.Time
		wantDays   int
		wantAdvanced bool
	}{
		{"61 days ahead", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 61, true},
		{"exactly 60 days", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), 60, false},
		{"60 days and some hours", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), 60, false},
		{"after departure", time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := TicketRequest{ReservedAt: tt.reserved, Flight: f}
			assert.Equal(t, tt.wantDays, tk.DaysBeforeDeparture())
			assert.Equal(t, tt.wantAdvanced, tk.IsAdvancedBooking())
			assert.Equal(t, !tt.wantAdvanced, tk.IsLateBooking())
		})
	}
}

func TestTicket_Validate(t *testing.T) {
	ok := TicketRequest{ReservedAt: time.Now(), Flight: sampleFlight(), Seat: Economy}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.ExtraLuggageKg = -3
	assert.True(t, errors.Is(bad.Validate(), types.ErrValidation))

	bad = ok
	bad.Seat = "cargo"
	assert.True(t, errors.Is(bad.Validate(), types.ErrValidation))

	bad = ok
	bad.Flight = nil
	assert.True(t, errors.Is(bad.Validate(), types.ErrValidation))
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	a, err := r.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAirline, a.Name)

	a, err = r.Lookup("skyhigh airline")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.Efficiency)

	_, err = r.Lookup("Oceanic")
	assert.True(t, errors.Is(err, types.ErrValidation))
}

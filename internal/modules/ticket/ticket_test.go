package ticket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/settings"
	"skyfare/internal/types"
)

func sampleFlight(id types.ID, seats int) *flight.Flight {
	narrow, _ := aircraft.Lookup(aircraft.Narrow)
	return &flight.Flight{
		ID:             id,
		From:           "France",
		To:             "Spain",
		Departure:      time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		Airline:        flight.Airline{Name: flight.DefaultAirline, Efficiency: 1},
		Aircraft:       narrow,
		DistanceKm:     1000,
		MaxSeats:       seats,
		SeatBasePrices: map[flight.SeatType]float64{flight.Economy: 200},
		CreatedAt:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

type fixture struct {
	flights *flight.MemoryStore
	store   *MemoryStore
	svc     *Service
	flight  *flight.Flight
}

func newFixture(t *testing.T, seats int) fixture {
	t.Helper()
	repo := flight.NewMemoryStore()
	f := sampleFlight("f-1", seats)
	require.NoError(t, repo.Add(context.Background(), f))
	seatsSvc := flight.NewService(nil, repo, settings.Static(settings.Defaults()), nil)
	store := NewMemoryStore()
	return fixture{flights: repo, store: store, svc: NewService(store, seatsSvc), flight: f}
}

func (fx fixture) request(seat flight.SeatType) (flight.TicketRequest, pricing.Quote) {
	req := flight.TicketRequest{
		ReservedAt:    time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
		Flight:        fx.flight,
		Seat:          seat,
		SpecialOffers: []flight.SpecialOffer{{Name: "Summer"}},
		Student:       true,
	}
	q := pricing.Quote{FlightID: fx.flight.ID, Seat: seat, Price: types.NewMoney(231.4712, "")}
	return req, q
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusNone, StatusIssued, true},
		{StatusIssued, StatusCancelled, true},
		{StatusCancelled, StatusIssued, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusNone, StatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSell_IssuesTicketAtQuotedPrice(t *testing.T) {
	fx := newFixture(t, 5)
	req, q := fx.request(flight.Economy)

	tk, f, err := fx.svc.Sell(context.Background(), req, q)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, tk.Status)
	assert.Equal(t, "231.47", tk.Price.Amount.StringFixed(2))
	assert.Equal(t, []string{"Summer"}, tk.SpecialOffers)
	assert.Equal(t, 1, f.SoldSeats)

	events := fx.store.Events(tk.ID)
	require.Len(t, events, 1)
	assert.Equal(t, StatusNone, events[0].FromStatus)
	assert.Equal(t, StatusIssued, events[0].ToStatus)

	listed, err := fx.svc.ListByFlight(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, tk.ID, listed[0].ID)
}

func TestSell_RejectsQuoteForOtherFlight(t *testing.T) {
	fx := newFixture(t, 5)
	req, q := fx.request(flight.Economy)
	q.FlightID = "other"

	_, _, err := fx.svc.Sell(context.Background(), req, q)
	assert.True(t, errors.Is(err, types.ErrValidation))

	got, err := fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SoldSeats)
}

func TestSell_SoldOut(t *testing.T) {
	fx := newFixture(t, 1)
	req, q := fx.request(flight.Economy)

	_, _, err := fx.svc.Sell(context.Background(), req, q)
	require.NoError(t, err)
	_, _, err = fx.svc.Sell(context.Background(), req, q)
	assert.True(t, errors.Is(err, flight.ErrSoldOut))
}

type failingStore struct{ *MemoryStore }

func (failingStore) Create(context.Context, *Ticket) error { return errors.New("disk full") }

func TestSell_ReleasesSeatWhenTicketNotStored(t *testing.T) {
	fx := newFixture(t, 2)
	svc := NewService(failingStore{fx.store}, flight.NewService(nil, fx.flights, settings.Static(settings.Defaults()), nil))
	req, q := fx.request(flight.Economy)

	_, _, err := svc.Sell(context.Background(), req, q)
	require.Error(t, err)

	got, err := fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SoldSeats)
}

func TestCancel_ReleasesSeat(t *testing.T) {
	fx := newFixture(t, 1)
	req, q := fx.request(flight.Economy)
	tk, _, err := fx.svc.Sell(context.Background(), req, q)
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(context.Background(), CancelCommand{TicketID: tk.ID, Reason: "schedule change"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "schedule change", *cancelled.CancelReason)
	assert.NotNil(t, cancelled.CancelledAt)

	got, err := fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SoldSeats)

	_, err = fx.svc.Cancel(context.Background(), CancelCommand{TicketID: tk.ID})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, fx.store.Events(tk.ID), 2)
}

type flakyRelease struct {
	SeatBooker
	fail bool
}

func (f *flakyRelease) Release(ctx context.Context, id types.ID) (*flight.Flight, error) {
	if f.fail {
		return nil, errors.New("connection reset")
	}
	return f.SeatBooker.Release(ctx, id)
}

func TestCancel_RestoresTicketWhenReleaseFails(t *testing.T) {
	fx := newFixture(t, 1)
	seats := &flakyRelease{SeatBooker: flight.NewService(nil, fx.flights, settings.Static(settings.Defaults()), nil), fail: true}
	svc := NewService(fx.store, seats)
	req, q := fx.request(flight.Economy)
	tk, _, err := svc.Sell(context.Background(), req, q)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), CancelCommand{TicketID: tk.ID, Reason: "ill"})
	require.Error(t, err)

	got, err := fx.store.Get(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, got.Status)
	assert.Nil(t, got.CancelledAt)
	assert.Nil(t, got.CancelReason)
	fl, err := fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fl.SoldSeats)

	seats.fail = false
	cancelled, err := svc.Cancel(context.Background(), CancelCommand{TicketID: tk.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	fl, err = fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fl.SoldSeats)
}

func TestCancel_UnknownTicket(t *testing.T) {
	fx := newFixture(t, 1)
	_, err := fx.svc.Cancel(context.Background(), CancelCommand{TicketID: "missing"})
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestConcurrentCancelSameTicket(t *testing.T) {
	fx := newFixture(t, 3)
	req, q := fx.request(flight.Economy)
	var ids []types.ID
	for i := 0; i < 3; i++ {
		tk, _, err := fx.svc.Sell(context.Background(), req, q)
		require.NoError(t, err)
		ids = append(ids, tk.ID)
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Cancel(context.Background(), CancelCommand{TicketID: ids[0]})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidState) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, success)

	got, err := fx.flights.Get(context.Background(), fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SoldSeats, "exactly one seat released")
}

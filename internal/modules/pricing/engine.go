package pricing

import (
	"fmt"
	"log/slog"
	"math"

	"skyfare/internal/modules/aircraft"
	"skyfare/internal/modules/demand"
	"skyfare/internal/modules/flight"
	"skyfare/internal/settings"
	"skyfare/internal/types"
)

// costBucket maps an aircraft class to its operating cost bucket and configured factor.
func costBucket(cfg settings.Configuration, c aircraft.ClassID) (string, float64) {
	switch c {
	case aircraft.Extended:
		return "wide", cfg.ExtendedCostFactor
	case aircraft.Long:
		return "long_range", cfg.LongCostFactor
	case aircraft.Ultra:
		return "ultra_long_range", cfg.UltraCostFactor
	default:
		return "narrow", cfg.NarrowCostFactor
	}
}

// DemandFactor combines the demand signals additively and clamps the result to [0.5, 3].
func DemandFactor(sig demand.Signals) float64 {
	d := 1.0 + 0.5*sig.LoadFactor
	if sig.Holiday {
		d += 0.3
	}
	if sig.TouristHotspot {
		d += 0.2
	}
	if sig.Weekend {
		d += 0.15
	}
	if sig.LateBooking {
		d -= 0.1
	}
	return math.Min(demandCeiling, math.Max(demandFloor, d))
}

// Compute prices a ticket from its settings and demand signals. It performs no I/O.
func Compute(t flight.TicketRequest, cfg settings.Configuration, sig demand.Signals) (Quote, error) {
	if err := t.Validate(); err != nil {
		return Quote{}, err
	}
	if err := t.Flight.Validate(); err != nil {
		return Quote{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Quote{}, err
	}
	f := t.Flight
	if f.MaxSeats <= 0 {
		return Quote{}, fmt.Errorf("%w: flight %s has no seat capacity", types.ErrValidation, f.ID)
	}

	var b Breakdown
	b.SeatFactor = flight.SeatFactor(cfg, t.Seat)
	b.BasePrice = cfg.BasePrice * b.SeatFactor

	b.CostBucket, b.CostFactor = costBucket(cfg, f.Aircraft.ID)
	b.AircraftCost = b.CostFactor * cfg.FuelCostPerKm * f.DistanceKm

	b.Demand = DemandFactor(sig)

	discount := func(name string, percent float64) {
		b.Discounts = append(b.Discounts, Adjustment{Name: name, Rate: settings.Rate(percent)})
		b.DiscountTotal += settings.Rate(percent)
	}
	surcharge := func(name string, percent float64) {
		b.Surcharges = append(b.Surcharges, Adjustment{Name: name, Rate: settings.Rate(percent)})
		b.SurchargeTotal += settings.Rate(percent)
	}

	var matched []string
	if sig.AdvancedBooking {
		discount("advanced_booking", cfg.AdvancedBookingDiscount)
	}
	for _, o := range t.SpecialOffers {
		if percent, ok := cfg.SpecialOfferPercent(o.Name); ok {
			discount("offer:"+o.Name, percent)
			matched = append(matched, o.Name)
		}
	}
	// The student flag stacks on top of a matched "Student" offer.
	if t.Student {
		discount("student", cfg.StudentDiscount)
	}
	if f.Stops > 0 {
		discount("stop", cfg.StopDiscount)
	}
	if f.IsRoundtrip() {
		discount("roundtrip", cfg.RoundtripDiscount)
	}

	if sig.Weekend {
		surcharge("weekend", cfg.WeekendSurcharge)
	}
	if sig.Holiday {
		surcharge("holiday", cfg.HolidayFactor)
	}
	if sig.LateBooking {
		surcharge("late_booking", cfg.LateBooking)
	}
	if t.ExtraLuggageKg > 0 {
		surcharge("luggage", cfg.LuggageSurcharge)
	}
	if sig.TouristHotspot {
		surcharge("tourist", cfg.TouristSurcharge)
	}

	// Discounts may exceed 100% and drive the expected price negative; it is not clamped.
	b.Expected = b.BasePrice * (1 - b.DiscountTotal) * (1 + b.SurchargeTotal) * b.Demand

	b.OperatingFloor = b.AircraftCost / (float64(f.MaxSeats) * cfg.Efficiency) * operatingMargin
	b.MinPrice = math.Max(b.OperatingFloor*profitMargin, b.BasePrice*(1+(b.Demand-1)*demandPassThrough))

	ceiling := economyCeiling
	if t.Seat.IsPremium() {
		ceiling = premiumCeiling
	}
	b.MaxPrice = math.Min(b.Expected*marketHeadroom, b.BasePrice*ceiling)

	q := Quote{
		FlightID:      f.ID,
		Seat:          t.Seat,
		Signals:       sig,
		MatchedOffers: matched,
	}

	// The revenue objective grows with price alone, so the optimum is the upper bound.
	price := b.MaxPrice
	b.Feasible = b.MinPrice <= b.MaxPrice
	if !b.Feasible {
		price = b.Expected
		q.Infeasible = &InfeasibleError{MinPrice: b.MinPrice, MaxPrice: b.MaxPrice, Expected: b.Expected}
		slog.Warn("price bounds infeasible; falling back to expected price",
			"flight_id", f.ID,
			"seat", t.Seat,
			"min_price", b.MinPrice,
			"max_price", b.MaxPrice,
			"expected", b.Expected,
		)
	}

	q.Breakdown = b
	q.Price = types.NewMoney(price, types.DefaultCurrency)
	return q, nil
}

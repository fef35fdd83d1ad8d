// README: Quote and breakdown returned by the pricing engine.
package pricing

import (
	"fmt"

	"skyfare/internal/modules/demand"
	"skyfare/internal/modules/flight"
	"skyfare/internal/types"
)

const (
	demandFloor   = 0.5
	demandCeiling = 3.0

	operatingMargin   = 1.10
	profitMargin      = 1.15
	marketHeadroom    = 1.5
	economyCeiling    = 2.0
	premiumCeiling    = 3.0
	demandPassThrough = 0.5
)

// Adjustment is one applied discount or surcharge, as a fraction.
type Adjustment struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Breakdown carries every intermediate value of a price computation.
type Breakdown struct {
	BasePrice      float64      `json:"base_price"`
	SeatFactor     float64      `json:"seat_factor"`
	CostBucket     string       `json:"cost_bucket"`
	CostFactor     float64      `json:"cost_factor"`
	AircraftCost   float64      `json:"aircraft_cost"`
	Demand         float64      `json:"demand"`
	Discounts      []Adjustment `json:"discounts"`
	Surcharges     []Adjustment `json:"surcharges"`
	DiscountTotal  float64      `json:"discount_total"`
	SurchargeTotal float64      `json:"surcharge_total"`
	Expected       float64      `json:"expected"`
	OperatingFloor float64      `json:"operating_floor"`
	MinPrice       float64      `json:"min_price"`
	MaxPrice       float64      `json:"max_price"`
	Feasible       bool         `json:"feasible"`
}

type Quote struct {
	FlightID  types.ID        `json:"flight_id"`
	Seat      flight.SeatType `json:"seat"`
	Price     types.Money     `json:"price"`
	Signals   demand.Signals  `json:"signals"`
	Breakdown Breakdown       `json:"breakdown"`
	// MatchedOffers lists the requested special offers found in the settings.
	MatchedOffers []string `json:"matched_offers"`
	// Infeasible is set when the price bounds crossed and the expected price was used.
	Infeasible *InfeasibleError `json:"infeasible,omitempty"`
}

// InfeasibleError reports crossed price bounds. It is attached to a Quote, never returned.
type InfeasibleError struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	Expected float64 `json:"expected"`
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("infeasible price bounds: min %.2f > max %.2f; using expected %.2f",
		e.MinPrice, e.MaxPrice, e.Expected)
}

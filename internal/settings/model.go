// README: Pricing configuration value object. Percent fields hold whole numbers (15 == 15%).
package settings

import (
	"context"
	"strings"
)

// Configuration is the flat pricing settings record, loaded once per pricing call.
type Configuration struct {
	Efficiency    float64 `json:"efficiency"`
	BasePrice     float64 `json:"base_price"`
	FuelCostPerKm float64 `json:"fuel_cost"`

	// Surcharges, percent.
	WeekendSurcharge float64 `json:"weekend_surcharge"`
	LateBooking      float64 `json:"late_booking"`
	HolidayFactor    float64 `json:"holiday_factor"`
	LuggageSurcharge float64 `json:"luggage_surcharge"`
	TouristSurcharge float64 `json:"tourist_surcharge"`

	EconomyFactor        float64 `json:"economy_factor"`
	PremiumEconomyFactor float64 `json:"premium_economy_factor"`
	BusinessFactor       float64 `json:"business_factor"`
	FirstClassFactor     float64 `json:"first_class_factor"`

	// Discounts, percent.
	AdvancedBookingDiscount float64 `json:"advanced_booking_discount"`
	RoundtripDiscount       float64 `json:"roundtrip_discount"`
	StopDiscount            float64 `json:"stop_discount"`
	StudentDiscount         float64 `json:"student_discount"`

	NarrowCostFactor   float64 `json:"narrow_cost_factor"`
	ExtendedCostFactor float64 `json:"extended_cost_factor"`
	LongCostFactor     float64 `json:"long_cost_factor"`
	UltraCostFactor    float64 `json:"ultra_cost_factor"`

	SpecialOffers []OfferRate `json:"special_offers"`
}

// OfferRate is a named special offer discount, percent.
type OfferRate struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Source supplies the configuration for a pricing call.
type Source interface {
	Load(ctx context.Context) (Configuration, error)
}

// Rate converts a whole-number percent to a fraction.
func Rate(percent float64) float64 {
	return percent / 100
}

// SpecialOfferPercent returns the percent configured for the offer name, matched case-insensitively.
func (c Configuration) SpecialOfferPercent(name string) (float64, bool) {
	for _, o := range c.SpecialOffers {
		if strings.EqualFold(o.Name, name) {
			return o.Value, true
		}
	}
	return 0, false
}

// Static is a Source that always returns the same configuration.
type Static Configuration

func (s Static) Load(context.Context) (Configuration, error) {
	return Configuration(s), nil
}

// Defaults holds the settings form's proposals for a new airline, with its fractional
// rates rescaled to whole percents. StudentDiscount has no form field and defaults to 15,
// so a student who also redeems the "Student" offer gets both discounts.
func Defaults() Configuration {
	return Configuration{
		Efficiency:    0.85,
		BasePrice:     200,
		FuelCostPerKm: 0.8,

		WeekendSurcharge: 10,
		LateBooking:      15,
		HolidayFactor:    20,
		LuggageSurcharge: 5,
		TouristSurcharge: 12,

		EconomyFactor:        1.0,
		PremiumEconomyFactor: 1.5,
		BusinessFactor:       2.5,
		FirstClassFactor:     4.0,

		AdvancedBookingDiscount: 20,
		RoundtripDiscount:       10,
		StopDiscount:            5,
		StudentDiscount:         15,

		NarrowCostFactor:   1.0,
		ExtendedCostFactor: 1.2,
		LongCostFactor:     1.5,
		UltraCostFactor:    2.0,

		SpecialOffers: []OfferRate{{Name: "Student", Value: 15}},
	}
}

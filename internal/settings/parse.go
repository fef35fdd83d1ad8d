package settings

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"

	"skyfare/internal/types"
)

// FieldError reports the configuration field that could not be used.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return types.ErrConfiguration
}

// RequiredFields lists every key a settings record must carry.
var RequiredFields = []string{
	"efficiency", "base_price", "fuel_cost",
	"weekend_surcharge", "late_booking", "holiday_factor", "luggage_surcharge", "tourist_surcharge",
	"economy_factor", "premium_economy_factor", "business_factor", "first_class_factor",
	"advanced_booking_discount", "roundtrip_discount", "stop_discount",
	"narrow_cost_factor", "extended_cost_factor", "long_cost_factor", "ultra_cost_factor",
	"student_discount",
}

// FromRecord builds a Configuration from a decoded settings record. Numbers may be
// JSON numbers or numeric strings; special offer values may carry a trailing "%".
func FromRecord(raw map[string]any) (Configuration, error) {
	var cfg Configuration
	targets := map[string]*float64{
		"efficiency":                &cfg.Efficiency,
		"base_price":                &cfg.BasePrice,
		"fuel_cost":                 &cfg.FuelCostPerKm,
		"weekend_surcharge":         &cfg.WeekendSurcharge,
		"late_booking":              &cfg.LateBooking,
		"holiday_factor":            &cfg.HolidayFactor,
		"luggage_surcharge":         &cfg.LuggageSurcharge,
		"tourist_surcharge":         &cfg.TouristSurcharge,
		"economy_factor":            &cfg.EconomyFactor,
		"premium_economy_factor":    &cfg.PremiumEconomyFactor,
		"business_factor":           &cfg.BusinessFactor,
		"first_class_factor":        &cfg.FirstClassFactor,
		"advanced_booking_discount": &cfg.AdvancedBookingDiscount,
		"roundtrip_discount":        &cfg.RoundtripDiscount,
		"stop_discount":             &cfg.StopDiscount,
		"narrow_cost_factor":        &cfg.NarrowCostFactor,
		"extended_cost_factor":      &cfg.ExtendedCostFactor,
		"long_cost_factor":          &cfg.LongCostFactor,
		"ultra_cost_factor":         &cfg.UltraCostFactor,
		"student_discount":          &cfg.StudentDiscount,
	}

	for _, field := range RequiredFields {
		v, ok := raw[field]
		if !ok || v == nil {
			return Configuration{}, &FieldError{Field: field, Reason: "missing"}
		}
		f, err := toNumber(v, false)
		if err != nil {
			return Configuration{}, &FieldError{Field: field, Reason: err.Error()}
		}
		*targets[field] = f
	}

	offers, err := parseOffers(raw["special_offers"])
	if err != nil {
		return Configuration{}, err
	}
	cfg.SpecialOffers = offers

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func parseOffers(v any) ([]OfferRate, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &FieldError{Field: "special_offers", Reason: "expected a list"}
	}
	offers := make([]OfferRate, 0, len(items))
	for i, item := range items {
		entry, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("special_offers[%d]", i), Reason: "expected an object"}
		}
		name := strings.TrimSpace(cast.ToString(entry["name"]))
		if name == "" {
			return nil, &FieldError{Field: fmt.Sprintf("special_offers[%d].name", i), Reason: "missing"}
		}
		if entry["value"] == nil {
			return nil, &FieldError{Field: fmt.Sprintf("special_offers[%d].value", i), Reason: "missing"}
		}
		value, err := toNumber(entry["value"], true)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("special_offers[%d].value", i), Reason: err.Error()}
		}
		offers = append(offers, OfferRate{Name: name, Value: value})
	}
	return offers, nil
}

func toNumber(v any, allowPercentSign bool) (float64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if allowPercentSign {
			s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		}
		if s == "" {
			return 0, fmt.Errorf("empty value")
		}
		v = s
	}
	if _, ok := v.(bool); ok {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", v)
	}
	return f, nil
}

// Validate rejects values the pricing formulas cannot work with.
func (c Configuration) Validate() error {
	if err := c.validateFinite(); err != nil {
		return err
	}
	switch {
	case c.Efficiency <= 0:
		return &FieldError{Field: "efficiency", Reason: "must be greater than 0"}
	case c.BasePrice < 0:
		return &FieldError{Field: "base_price", Reason: "must not be negative"}
	case c.FuelCostPerKm < 0:
		return &FieldError{Field: "fuel_cost", Reason: "must not be negative"}
	}
	return nil
}

// validateFinite catches NaN and infinities in a hand-built configuration.
func (c Configuration) validateFinite() error {
	rec := c.Record()
	for _, field := range RequiredFields {
		if f, ok := rec[field].(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return &FieldError{Field: field, Reason: "must be a finite number"}
		}
	}
	for i, o := range c.SpecialOffers {
		if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return &FieldError{Field: fmt.Sprintf("special_offers[%d].value", i), Reason: "must be a finite number"}
		}
	}
	return nil
}

// ValidateDiscountCeiling is an opt-in stricter check: the discounts that can stack on
// one ticket (every special offer included) must not exceed 100%.
func (c Configuration) ValidateDiscountCeiling() error {
	total := c.AdvancedBookingDiscount + c.RoundtripDiscount + c.StopDiscount + c.StudentDiscount
	for _, o := range c.SpecialOffers {
		total += o.Value
	}
	if total > 100 {
		return &FieldError{Field: "discounts", Reason: fmt.Sprintf("combined discounts reach %.2f%%", total)}
	}
	return nil
}

// Record renders the configuration back into its flat record form.
func (c Configuration) Record() map[string]any {
	offers := make([]any, 0, len(c.SpecialOffers))
	for _, o := range c.SpecialOffers {
		offers = append(offers, map[string]any{"name": o.Name, "value": o.Value})
	}
	return map[string]any{
		"efficiency":                c.Efficiency,
		"base_price":                c.BasePrice,
		"fuel_cost":                 c.FuelCostPerKm,
		"weekend_surcharge":         c.WeekendSurcharge,
		"late_booking":              c.LateBooking,
		"holiday_factor":            c.HolidayFactor,
		"luggage_surcharge":         c.LuggageSurcharge,
		"tourist_surcharge":         c.TouristSurcharge,
		"economy_factor":            c.EconomyFactor,
		"premium_economy_factor":    c.PremiumEconomyFactor,
		"business_factor":           c.BusinessFactor,
		"first_class_factor":        c.FirstClassFactor,
		"advanced_booking_discount": c.AdvancedBookingDiscount,
		"roundtrip_discount":        c.RoundtripDiscount,
		"stop_discount":             c.StopDiscount,
		"narrow_cost_factor":        c.NarrowCostFactor,
		"extended_cost_factor":      c.ExtendedCostFactor,
		"long_cost_factor":          c.LongCostFactor,
		"ultra_cost_factor":         c.UltraCostFactor,
		"student_discount":          c.StudentDiscount,
		"special_offers":            offers,
	}
}

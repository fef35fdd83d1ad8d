// README: Demand indicators derived from flight state, the ticket and external feeds.
package demand

import (
	"context"
	"time"
)

// Tier classifies a country by yearly international tourist arrivals.
type Tier string

const (
	TierNoData   Tier = "NO_DATA"
	TierLow      Tier = "LOW"
	TierModerate Tier = "MODERATE"
	TierStrong   Tier = "STRONG"
	TierMajor    Tier = "MAJOR"
)

// IsHotspot reports whether the tier counts as a tourist hotspot.
func (t Tier) IsHotspot() bool {
	return t == TierMajor || t == TierStrong
}

// ClassifyTourism maps yearly arrivals to a tier; nil means the feed had no figure.
func ClassifyTourism(arrivals *float64) Tier {
	if arrivals == nil {
		return TierNoData
	}
	switch a := *arrivals; {
	case a > 10_000_000:
		return TierMajor
	case a > 3_000_000:
		return TierStrong
	case a > 1_000_000:
		return TierModerate
	default:
		return TierLow
	}
}

type Signals struct {
	LoadFactor      float64 `json:"load_factor"`
	Holiday         bool    `json:"holiday"`
	TouristHotspot  bool    `json:"tourist_hotspot"`
	Tourism         Tier    `json:"tourism_tier"`
	Weekend         bool    `json:"weekend"`
	AdvancedBooking bool    `json:"advanced_booking"`
	LateBooking     bool    `json:"late_booking"`
}

// HolidayProvider lists the public holidays of a country.
type HolidayProvider interface {
	Holidays(ctx context.Context, country string) ([]time.Time, error)
}

// TourismProvider returns the latest yearly tourist arrivals of a country, nil when unknown.
type TourismProvider interface {
	Arrivals(ctx context.Context, country string) (*float64, error)
}

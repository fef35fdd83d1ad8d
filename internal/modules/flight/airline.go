package flight

import (
	"fmt"
	"strings"

	"skyfare/internal/types"
)

// DefaultAirline operates flights planned without an explicit airline.
const DefaultAirline = "SkyHigh Airline"

type Airline struct {
	Name       string  `json:"name"`
	Efficiency float64 `json:"efficiency"`
}

// Registry maps airline names to their efficiency factor.
type Registry map[string]float64

// DefaultRegistry is the airline roster known to the planner.
func DefaultRegistry() Registry {
	return Registry{DefaultAirline: 1.0}
}

// Lookup resolves name case-insensitively. An empty name selects the default airline.
func (r Registry) Lookup(name string) (Airline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultAirline
	}
	for n, eff := range r {
		if strings.EqualFold(n, name) {
			if eff <= 0 {
				return Airline{}, fmt.Errorf("%w: airline %q has no positive efficiency", types.ErrValidation, n)
			}
			return Airline{Name: n, Efficiency: eff}, nil
		}
	}
	return Airline{}, fmt.Errorf("%w: unknown airline %q", types.ErrValidation, name)
}

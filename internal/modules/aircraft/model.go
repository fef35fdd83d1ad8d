// README: Aircraft catalog. Classes are ordered by range; the last one has no upper distance bound.
package aircraft

import "fmt"

type ClassID string

const (
	Narrow   ClassID = "narrow"
	Extended ClassID = "extended"
	Long     ClassID = "long"
	Ultra    ClassID = "ultra"
)

type Class struct {
	ID         ClassID `json:"id"`
	Name       string  `json:"name"`
	RangeKm    float64 `json:"range_km"`
	Capacity   int     `json:"capacity"`
	CostFactor float64 `json:"cost_factor"`
}

// Catalog lists every class in increasing range order.
var Catalog = []Class{
	{ID: Narrow, Name: "Narrow Body", RangeKm: 2500, Capacity: 180, CostFactor: 1.0},
	{ID: Extended, Name: "Medium Haul", RangeKm: 5000, Capacity: 260, CostFactor: 1.2},
	{ID: Long, Name: "Long Haul", RangeKm: 10000, Capacity: 320, CostFactor: 1.5},
	{ID: Ultra, Name: "Ultra Long Range", RangeKm: 12000, Capacity: 350, CostFactor: 2.0},
}

// Lookup returns the catalog entry for id.
func Lookup(id ClassID) (Class, error) {
	for _, c := range Catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return Class{}, fmt.Errorf("unknown aircraft class %q", id)
}

// Selection is the outcome of choosing an aircraft for a route.
type Selection struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	Aircraft   Class   `json:"aircraft"`
	Stops      int     `json:"stops"`
}

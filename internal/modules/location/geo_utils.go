// README: Pure geographic helpers (haversine distance, country name normalization).
package location

import (
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push a just above 1 for antipodal points.
	a = math.Min(1, a)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// normalizeCountry is the memo/cache key for a country name.
func normalizeCountry(country string) string {
	return strings.ToLower(strings.Join(strings.Fields(country), " "))
}

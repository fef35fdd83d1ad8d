// README: Country coordinates resolved through the geocoding collaborator.
package location

import (
	"context"

	"skyfare/internal/types"
)

// Geocoder resolves a country name to its representative coordinates.
type Geocoder interface {
	LatLng(ctx context.Context, country string) (types.Point, error)
}

// GeocoderFunc adapts a function to Geocoder.
type GeocoderFunc func(ctx context.Context, country string) (types.Point, error)

func (f GeocoderFunc) LatLng(ctx context.Context, country string) (types.Point, error) {
	return f(ctx, country)
}

package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/testutil"
	"skyfare/internal/types"
)

type countingGeocoder struct {
	points map[string]types.Point
	calls  map[string]int
}

func newCountingGeocoder() *countingGeocoder {
	return &countingGeocoder{
		points: map[string]types.Point{
			"France":  {Lat: 46, Lng: 2},
			"Japan":   {Lat: 36, Lng: 138},
			"Germany": {Lat: 51, Lng: 9},
		},
		calls: map[string]int{},
	}
}

func (g *countingGeocoder) LatLng(_ context.Context, country string) (types.Point, error) {
	g.calls[country]++
	p, ok := g.points[country]
	if !ok {
		return types.Point{}, errors.New("no results")
	}
	return p, nil
}

func TestDistance_UsesHaversineOnGeocodedPoints(t *testing.T) {
	geo := newCountingGeocoder()
	svc := NewService(geo, nil)

	got, err := svc.Distance(context.Background(), "France", "Japan")
	require.NoError(t, err)
	assert.InDelta(t, haversineKm(46, 2, 36, 138), got, 1e-9)
}

func TestDistance_SymmetricAndZeroForSameCountry(t *testing.T) {
	svc := NewService(newCountingGeocoder(), nil)
	ctx := context.Background()

	ab, err := svc.Distance(ctx, "France", "Germany")
	require.NoError(t, err)
	ba, err := svc.Distance(ctx, "Germany", "France")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)

	same, err := svc.Distance(ctx, "Japan", "Japan")
	require.NoError(t, err)
	assert.Zero(t, same)
}

func TestLocate_MemoizesPerCountry(t *testing.T) {
	geo := newCountingGeocoder()
	svc := NewService(geo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Distance(ctx, "France", "Japan")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, geo.calls["France"])
	assert.Equal(t, 1, geo.calls["Japan"])
}

func TestLocate_LookupFailure(t *testing.T) {
	svc := NewService(newCountingGeocoder(), nil)

	_, err := svc.Distance(context.Background(), "France", "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrLookup))
}

func TestLocate_EmptyCountry(t *testing.T) {
	svc := NewService(newCountingGeocoder(), nil)

	_, err := svc.Locate(context.Background(), "   ")
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestLocate_FailureIsNotMemoized(t *testing.T) {
	geo := newCountingGeocoder()
	svc := NewService(geo, nil)
	ctx := context.Background()

	_, err := svc.Locate(ctx, "Atlantis")
	require.Error(t, err)
	geo.points["Atlantis"] = types.Point{Lat: 10, Lng: -30}
	p, err := svc.Locate(ctx, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, types.Point{Lat: 10, Lng: -30}, p)
}

func TestLocate_RedisCacheSharesCoordinates(t *testing.T) {
	rdb := testutil.OpenTestRedis(t, countryCoordsKey)
	store := NewStore(rdb)
	ctx := context.Background()

	first := newCountingGeocoder()
	first.points["France"] = types.Point{Lat: 46.227638, Lng: 2.213749}
	_, err := NewService(first, store).Locate(ctx, "France")
	require.NoError(t, err)

	second := newCountingGeocoder()
	p, err := NewService(second, store).Locate(ctx, "France")
	require.NoError(t, err)
	assert.Zero(t, second.calls["France"])
	assert.Equal(t, types.Point{Lat: 46.227638, Lng: 2.213749}, p)
}

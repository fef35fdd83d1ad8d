// README: Country coordinate cache backed by a Redis hash, shared across processes.
package location

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"skyfare/internal/types"
)

const countryCoordsKey = "location:countries"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// GetCoords returns the cached coordinates, and whether the country was cached.
// Values are stored as exact decimal strings so cached and fresh lookups agree bit for bit.
func (s *Store) GetCoords(ctx context.Context, country string) (types.Point, bool, error) {
	val, err := s.redis.HGet(ctx, countryCoordsKey, country).Result()
	if err == redis.Nil {
		return types.Point{}, false, nil
	}
	if err != nil {
		return types.Point{}, false, err
	}
	lat, lng, ok := strings.Cut(val, ",")
	if !ok {
		return types.Point{}, false, fmt.Errorf("malformed coordinates for %s: %q", country, val)
	}
	p := types.Point{}
	if p.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return types.Point{}, false, err
	}
	if p.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return types.Point{}, false, err
	}
	return p, true, nil
}

func (s *Store) SetCoords(ctx context.Context, country string, p types.Point) error {
	val := strconv.FormatFloat(p.Lat, 'g', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'g', -1, 64)
	return s.redis.HSet(ctx, countryCoordsKey, country, val).Err()
}

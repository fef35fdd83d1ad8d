// README: Redis cache in front of the holiday and tourism feeds.
package demand

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	holidaysKeyPrefix = "demand:holidays:%s"
	arrivalsKeyPrefix = "demand:arrivals:%s"
	// noArrivals marks a country the tourism feed has no figure for.
	noArrivals = "none"
	dateLayout = "2006-01-02"
)

// CachedFeeds wraps the feeds with a Redis cache. Cache errors fall through to the feed.
type CachedFeeds struct {
	redis    *redis.Client
	holidays HolidayProvider
	tourism  TourismProvider
	ttl      time.Duration
}

func NewCachedFeeds(redis *redis.Client, holidays HolidayProvider, tourism TourismProvider, ttl time.Duration) *CachedFeeds {
	return &CachedFeeds{redis: redis, holidays: holidays, tourism: tourism, ttl: ttl}
}

func (c *CachedFeeds) Holidays(ctx context.Context, country string) ([]time.Time, error) {
	key := fmt.Sprintf(holidaysKeyPrefix, cacheKey(country))
	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		if days, perr := parseDates(val); perr == nil {
			return days, nil
		}
	} else if err != redis.Nil {
		slog.Warn("holiday cache read failed", "country", country, "error", err)
	}

	days, err := c.holidays.Holidays(ctx, country)
	if err != nil {
		return nil, err
	}
	if err := c.redis.Set(ctx, key, formatDates(days), c.ttl).Err(); err != nil {
		slog.Warn("holiday cache write failed", "country", country, "error", err)
	}
	return days, nil
}

func (c *CachedFeeds) Arrivals(ctx context.Context, country string) (*float64, error) {
	key := fmt.Sprintf(arrivalsKeyPrefix, cacheKey(country))
	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		if val == noArrivals {
			return nil, nil
		}
		if v, perr := strconv.ParseFloat(val, 64); perr == nil {
			return &v, nil
		}
	} else if err != redis.Nil {
		slog.Warn("tourism cache read failed", "country", country, "error", err)
	}

	arrivals, err := c.tourism.Arrivals(ctx, country)
	if err != nil {
		return nil, err
	}
	stored := noArrivals
	if arrivals != nil {
		stored = strconv.FormatFloat(*arrivals, 'g', -1, 64)
	}
	if err := c.redis.Set(ctx, key, stored, c.ttl).Err(); err != nil {
		slog.Warn("tourism cache write failed", "country", country, "error", err)
	}
	return arrivals, nil
}

func cacheKey(country string) string {
	return strings.ToLower(strings.Join(strings.Fields(country), "_"))
}

func formatDates(days []time.Time) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.Format(dateLayout)
	}
	return strings.Join(parts, ",")
}

func parseDates(s string) ([]time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		d, err := time.Parse(dateLayout, p)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

package demand

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyfare/internal/testutil"
)

func TestCachedFeeds_ServesSecondCallFromRedis(t *testing.T) {
	rdb := testutil.OpenTestRedis(t,
		"demand:holidays:japan", "demand:arrivals:japan", "demand:arrivals:atlantis")
	h := &stubHolidays{days: map[string][]time.Time{"Japan": {day("2025-08-11"), day("2025-09-15")}}}
	tour := &stubTourism{arrivals: map[string]float64{"Japan": 31_881_000}}
	feeds := NewCachedFeeds(rdb, h, tour, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		days, err := feeds.Holidays(ctx, "Japan")
		require.NoError(t, err)
		assert.Equal(t, []time.Time{day("2025-08-11"), day("2025-09-15")}, days)

		a, err := feeds.Arrivals(ctx, "Japan")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, 31_881_000.0, *a)

		none, err := feeds.Arrivals(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Nil(t, none)
	}
	assert.EqualValues(t, 1, h.calls.Load())
	assert.EqualValues(t, 2, tour.calls.Load())

	ttl, err := rdb.TTL(ctx, "demand:holidays:japan").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestDateCodec(t *testing.T) {
	days := []time.Time{day("2025-01-01"), day("2025-12-25")}
	got, err := parseDates(formatDates(days))
	require.NoError(t, err)
	assert.Equal(t, days, got)

	empty, err := parseDates(formatDates(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

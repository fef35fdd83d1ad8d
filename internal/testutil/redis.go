package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// OpenTestRedis connects to SKYFARE_TEST_REDIS_ADDR and deletes the given keys before and after the test.
func OpenTestRedis(t *testing.T, keys ...string) *redis.Client {
	t.Helper()

	addr := os.Getenv("SKYFARE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKYFARE_TEST_REDIS_ADDR not set; skipping integration test")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	if len(keys) > 0 {
		rdb.Del(ctx, keys...)
	}
	t.Cleanup(func() {
		if len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
		rdb.Close()
	})
	return rdb
}

package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// GetRedisClientAndCtx connects to redis at addr and flushes the default DB,
// so every test starts without leftover keys (e.g. rate limiter counters).
func GetRedisClientAndCtx(t *testing.T, addr, password string) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	t.Logf("using redis addr: [%s]", addr)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	pingRes, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)
	t.Logf("redis ping res: %s", pingRes)

	require.NoError(t, rdb.FlushDB(ctx).Err())

	return ctx, rdb
}

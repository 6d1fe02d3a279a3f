package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// NewRedisClient connects to a test redis at addr and waits until it answers
// a ping. The client is closed when the test ends.
func NewRedisClient(t *testing.T, addr, password string) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err() == nil
	}, 20*time.Second, 250*time.Millisecond, "redis at [%s] not ready", addr)

	t.Logf("redis ready at [%s]", addr)
	return rdb
}

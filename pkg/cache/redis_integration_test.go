//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/redis"
)

func newRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	c := cache.NewRedis(client,
		cache.WithPrefix[map[string]string]("lingua-test"),
		cache.WithRedisDefaultTTL[map[string]string](time.Minute),
	)
	t.Cleanup(func() { _ = c.Clear(ctx) })

	_, err := c.Get(ctx, "catalog:messages")
	require.ErrorIs(t, err, cache.ErrNotFound)

	value := map[string]string{"greeting": "Hallo"}
	require.NoError(t, c.Set(ctx, "catalog:messages_de", value, 0))

	got, err := c.Get(ctx, "catalog:messages_de")
	require.NoError(t, err)
	require.Equal(t, value, got)

	ttl, err := client.TTL(ctx, "lingua-test:catalog:messages_de").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Set(ctx, "forever", value, -1))
	ttl, err = client.TTL(ctx, "lingua-test:forever").Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl)

	require.NoError(t, client.Set(ctx, "unrelated", "x", time.Minute).Err())
	t.Cleanup(func() { _ = client.Del(ctx, "unrelated").Err() })

	require.NoError(t, c.Delete(ctx, "forever"))
	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "catalog:messages_de")
	require.ErrorIs(t, err, cache.ErrNotFound)

	n, err := client.Exists(ctx, "unrelated").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestRedis_Marshaler(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedis(newRedisClient(t),
		cache.WithPrefix[string]("lingua-raw"),
		cache.WithMarshaler[string](rawMarshaler{}),
	)
	t.Cleanup(func() { _ = c.Clear(ctx) })

	require.NoError(t, c.Set(ctx, "k", "plain", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "plain", got)
}

type rawMarshaler struct{}

func (rawMarshaler) Marshal(v string) ([]byte, error)      { return []byte(v), nil }
func (rawMarshaler) Unmarshal(data []byte) (string, error) { return string(data), nil }

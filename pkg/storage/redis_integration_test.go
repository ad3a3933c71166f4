//go:build integration

package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/redis"
	"github.com/dmitrymomot/lingua/pkg/storage"
)

func TestRedisStorage_Integration(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { _ = client.Close() })

	s := storage.NewRedis(client, "it-storage")

	require.NoError(t, s.Save(ctx, "messages.properties", strings.NewReader("a=1\n")))
	require.Equal(t, "a=1\n", readAll(t, s, "messages.properties"))

	require.NoError(t, s.Delete(ctx, "messages.properties"))
	_, err = s.Open(ctx, "messages.properties")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache shared between processes. Values are encoded with the
// configured Marshaler and stored under "prefix:key".
type Redis[V any] struct {
	client     redis.UniversalClient
	marshaler  Marshaler[V]
	prefix     string
	defaultTTL time.Duration
}

// RedisOption configures a Redis cache.
type RedisOption[V any] func(*Redis[V])

// WithPrefix namespaces keys. Without a prefix Clear flushes the whole
// database.
func WithPrefix[V any](prefix string) RedisOption[V] {
	return func(r *Redis[V]) { r.prefix = prefix }
}

// WithRedisDefaultTTL sets the expiration used when Set gets a zero ttl.
// Default: 1 hour.
func WithRedisDefaultTTL[V any](d time.Duration) RedisOption[V] {
	return func(r *Redis[V]) { r.defaultTTL = d }
}

// WithMarshaler replaces the JSON encoding.
func WithMarshaler[V any](m Marshaler[V]) RedisOption[V] {
	return func(r *Redis[V]) { r.marshaler = m }
}

// NewRedis creates a cache on top of client, typically obtained from
// pkg/redis.Open.
func NewRedis[V any](client redis.UniversalClient, opts ...RedisOption[V]) *Redis[V] {
	r := &Redis[V]{
		client:     client,
		marshaler:  JSON[V]{},
		defaultTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}

	return r.marshaler.Unmarshal(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.defaultTTL
	}
	// Redis treats 0 as no expiration.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear removes the prefixed keys with SCAN, or flushes the database when
// no prefix is set.
func (r *Redis[V]) Clear(ctx context.Context) error {
	if r.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; the client is owned by the caller.
func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)

package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds connection settings, typically read from the environment.
type Config struct {
	URL           string        `env:"REDIS_URL" yaml:"url"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10" yaml:"pool_size"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s" yaml:"retry_interval"`
}

// Option tunes the client created by Open.
type Option func(*options)

type options struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	ioTimeout     time.Duration
}

// WithPoolSize sets the maximum number of pooled connections. Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithRetry sets how many times the first ping is attempted. The wait
// between attempts grows linearly from interval. Default: 3 attempts, 2s.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets the dial timeout and the read/write timeout.
// Default: 5s and 3s.
func WithTimeouts(dial, rw time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = dial
		o.ioTimeout = rw
	}
}

// Open connects to url, a redis:// or rediss:// address, and pings the
// server before returning.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := options{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
		ioTimeout:     3 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout

	for i := range max(o.retryAttempts, 1) {
		client := redis.NewClient(ro)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		if err := wait(ctx, time.Duration(i+1)*o.retryInterval); err != nil {
			return nil, errors.Join(ErrConnectionFailed, err)
		}
	}

	return nil, ErrConnectionFailed
}

// OpenConfig opens a client from cfg.
func OpenConfig(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	return Open(ctx, cfg.URL,
		WithPoolSize(cfg.PoolSize),
		WithRetry(cfg.RetryAttempts, cfg.RetryInterval),
	)
}

// Healthcheck returns a ping probe for health endpoints.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes the client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

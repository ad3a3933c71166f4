package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the PostgreSQL settings of the catalog store.
type Config struct {
	ConnectionString string        `env:"DATABASE_URL" yaml:"url"`
	MigrationsTable  string        `env:"DATABASE_MIGRATIONS_TABLE" envDefault:"lingua_migrations" yaml:"migrations_table"`
	MaxConns         int32         `env:"DATABASE_MAX_CONNS" envDefault:"10" yaml:"max_conns"`
	MinConns         int32         `env:"DATABASE_MIN_CONNS" envDefault:"1" yaml:"min_conns"`
	MaxConnIdleTime  time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m" yaml:"max_conn_idle_time"`
	RetryAttempts    int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval    time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"2s" yaml:"retry_interval"`
}

// Open connects a pool and pings it, retrying with a growing wait between
// attempts.
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, pc)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrEmptyConnectionString
	}

	pc, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = min(cfg.MinConns, pc.MaxConns)
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	return pc, nil
}

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthcheck returns a ping probe for health endpoints.
func Healthcheck(p Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if p == nil {
			return ErrHealthcheckFailed
		}
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes the pool.
func Shutdown(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lingua/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. It has the shape of the Healthcheck
// helpers in pkg/db and pkg/redis.
type CheckFunc func(ctx context.Context) error

// Checks maps a check name to its probe.
type Checks map[string]CheckFunc

// Names returns the check names in sorted order.
func (c Checks) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Response is the JSON body of the readiness endpoint.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of a single probe.
type Check struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures the readiness handler.
type Option func(*config)

// WithTimeout bounds the whole set of checks. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger failed checks are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently under the configured timeout. The
// returned error joins every failure; each is wrapped with ErrCheckFailed
// or ErrCheckTimeout.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	return run(ctx, checks, newConfig(opts...))
}

func run(ctx context.Context, checks Checks, cfg *config) (*Response, error) {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
		errs    []error
	)

	// Checks never fail the group; every probe runs to completion.
	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			start := time.Now()
			err := check(ctx)
			result := Check{Status: StatusHealthy, Duration: time.Since(start).Round(time.Millisecond).String()}

			if err != nil {
				sentinel := ErrCheckFailed
				if errors.Is(err, context.DeadlineExceeded) {
					sentinel = ErrCheckTimeout
				}
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				cfg.logger.WarnContext(ctx, "readiness check failed",
					slog.String("check", name),
					slog.Any("error", err),
				)
				err = errors.Join(sentinel, fmt.Errorf("%s: %w", name, err))
			}

			mu.Lock()
			results[name] = result
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Status: StatusHealthy, Checks: results}
	if len(errs) > 0 {
		resp.Status = StatusUnhealthy
	}
	return resp, errors.Join(errs...)
}

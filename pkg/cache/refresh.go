package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Refresher clears a cache on a cron schedule so that edited catalogs are
// picked up without a restart.
type Refresher struct {
	cache    Clearer
	schedule cron.Schedule
	logger   *slog.Logger
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithRefreshLogger sets the logger used to report failed clears.
func WithRefreshLogger(l *slog.Logger) RefresherOption {
	return func(r *Refresher) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRefresher parses expr, a five-field cron expression or a descriptor
// such as "@hourly" or "@every 10m".
func NewRefresher(c Clearer, expr string, opts ...RefresherOption) (*Refresher, error) {
	if c == nil {
		return nil, ErrNilCache
	}

	schedule, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCron, expr, err)
	}

	r := &Refresher{
		cache:    c,
		schedule: schedule,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Next returns the first activation after t.
func (r *Refresher) Next(t time.Time) time.Time {
	return r.schedule.Next(t)
}

// Run clears the cache at every activation until ctx is done. Failed clears
// are logged and do not stop the loop.
func (r *Refresher) Run(ctx context.Context) error {
	for {
		timer := time.NewTimer(time.Until(r.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if err := r.cache.Clear(ctx); err != nil {
			r.logger.ErrorContext(ctx, "cache refresh failed", slog.Any("error", err))
			continue
		}
		r.logger.DebugContext(ctx, "cache refreshed")
	}
}

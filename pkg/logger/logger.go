package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config selects the log output. Errors are also sent to Sentry when
// SentryDSN is set.
type Config struct {
	Level             string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`
	Format            string `env:"LOG_FORMAT" envDefault:"text" yaml:"format"`
	SentryDSN         string `env:"SENTRY_DSN" yaml:"sentry_dsn"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"sentry_environment"`
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// New builds a logger writing to w. Context attributes stored with
// WithAttrs are added to every record, along with whatever the extractors
// find in the context.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			EnableLogs:  true,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSentryInit, err)
		}
		sh := sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
		}.NewSentryHandler(context.Background())
		h = fanout{h, sh}
	}

	return slog.New(NewContextHandler(h, append([]ContextExtractor{contextAttrs}, extractors...)...)), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Flush returns a shutdown hook that waits for buffered Sentry events.
// It is a no-op when Sentry was not initialized.
func Flush(timeout time.Duration) func(context.Context) error {
	return func(context.Context) error {
		if sentry.CurrentHub().Client() != nil {
			sentry.Flush(timeout)
		}
		return nil
	}
}

// fanout forwards records to every handler that accepts their level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, rec.Level) {
			if err := h.Handle(ctx, rec.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

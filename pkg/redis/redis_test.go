package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", ErrEmptyConnectionURL},
		{"http scheme", "http://localhost:6379", ErrFailedToParseURL},
		{"no scheme", "localhost:6379", ErrFailedToParseURL},
		{"bad port", "redis://localhost:notaport", ErrFailedToParseURL},
		{"bad database", "redis://localhost:6379/notanumber", ErrFailedToParseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := Open(ctx, tt.url)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, client)
		})
	}
}

func TestOpen_GivesUp(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// Nothing listens on port 1.
	_, err := Open(ctx, "redis://127.0.0.1:1/0",
		WithRetry(5, time.Second),
		WithTimeouts(50*time.Millisecond, 50*time.Millisecond),
	)
	require.ErrorIs(t, err, ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{err: errors.New("close error")}
	require.EqualError(t, Shutdown(c)(context.Background()), "close error")
	require.True(t, c.closed)
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, wait(ctx, 10*time.Second), context.Canceled)

	require.NoError(t, wait(context.Background(), time.Millisecond))
}

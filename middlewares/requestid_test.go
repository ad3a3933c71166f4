package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/middlewares"
	"github.com/dmitrymomot/lingua/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middlewares.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middlewares.RequestIDFromContext(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, "abc-123")
		rec := serve(h, req)

		require.Equal(t, "abc-123", seen)
		require.Equal(t, "abc-123", rec.Header().Get(middlewares.RequestIDHeader))
	})

	t.Run("generates uuid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, strings.Repeat("x", 200))
		rec := serve(h, req)

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		require.Equal(t, seen, rec.Header().Get(middlewares.RequestIDHeader))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(&buf, logger.Config{}, middlewares.RequestIDExtractor())
	require.NoError(t, err)

	h := middlewares.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "handled")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middlewares.RequestIDHeader, "req-7")
	serve(h, req)

	require.Contains(t, buf.String(), "request_id=req-7")
}

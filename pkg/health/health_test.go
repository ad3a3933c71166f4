package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/health"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func slow(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		resp, err := health.Run(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, health.StatusHealthy, resp.Status)
	})

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()
		resp, err := health.Run(context.Background(), health.Checks{"a": ok, "b": ok})
		require.NoError(t, err)
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
	})

	t.Run("one failing", func(t *testing.T) {
		t.Parallel()
		resp, err := health.Run(context.Background(), health.Checks{"store": ok, "redis": failing})
		require.ErrorIs(t, err, health.ErrCheckFailed)
		require.ErrorContains(t, err, "redis: connection refused")
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["store"].Status)
		require.Equal(t, "connection refused", resp.Checks["redis"].Error)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		resp, err := health.Run(context.Background(), health.Checks{"postgres": slow},
			health.WithTimeout(20*time.Millisecond))
		require.ErrorIs(t, err, health.ErrCheckTimeout)
		require.Equal(t, health.StatusUnhealthy, resp.Checks["postgres"].Status)
	})
}

func TestChecks_Names(t *testing.T) {
	t.Parallel()
	names := health.Checks{"redis": ok, "catalog": ok, "postgres": ok}.Names()
	require.Equal(t, []string{"catalog", "postgres", "redis"}, names)
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"store": ok})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("plain text failure", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"redis": failing})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "Service Unavailable", rec.Body.String())
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodHead, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("json on failure", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"redis": failing})(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp health.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusUnhealthy, resp.Checks["redis"].Status)
	})

	t.Run("format query", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}

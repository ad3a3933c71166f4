package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/middlewares"
	"github.com/dmitrymomot/lingua/pkg/logger"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(&buf, logger.Config{})
	require.NoError(t, err)
	mw := middlewares.Recover(log)

	t.Run("converts panic to 500", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), "panic: boom")
	})

	t.Run("passes through", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }))
		require.Equal(t, http.StatusNoContent, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})

	t.Run("re-raises abort", func(t *testing.T) {
		h := mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	require.EqualError(t, &middlewares.PanicError{Value: 42}, "panic: 42")
}

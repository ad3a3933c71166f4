package middlewares_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/middlewares"
	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/logger"
	"github.com/dmitrymomot/lingua/pkg/props"
)

func newResolver(t *testing.T) *i18n.Resolver {
	t.Helper()
	r, err := i18n.NewResolver(i18n.MemoryLoader{
		"messages":    props.FromPairs("greeting", "Hello, {0}!", "bye", "Goodbye"),
		"messages_en": props.FromPairs("greeting", "Hi, {0}!"),
		"messages_de": props.FromPairs("greeting", "Hallo, {0}!"),
	},
		i18n.WithDefaultLocale(i18n.LocaleKey{Language: "en"}),
		i18n.WithMissingKeyPolicy(i18n.PolicyError),
	)
	require.NoError(t, err)
	return r
}

func greet(w http.ResponseWriter, r *http.Request) {
	tr := middlewares.TranslatorFromContext(r.Context())
	fmt.Fprint(w, tr.T("greeting", "Anna"))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLocale(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t)

	t.Run("uses Accept-Language", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Locale(resolver, "messages")(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de-AT,de;q=0.9")
		rec := serve(h, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Hallo, Anna!", rec.Body.String())
		require.Equal(t, "de", rec.Header().Get("Content-Language"))
		require.Equal(t, "Accept-Language", rec.Header().Get("Vary"))
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Locale(resolver, "messages")(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en_US"})
		rec := serve(h, req)

		require.Equal(t, "Hi, Anna!", rec.Body.String())
		require.Equal(t, "en", rec.Header().Get("Content-Language"))
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Locale(resolver, "messages")(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "fr")
		require.Equal(t, "Hi, Anna!", serve(h, req).Body.String())
	})

	t.Run("restricted to available locales", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Locale(resolver, "messages",
			middlewares.WithAvailableLocales(i18n.LocaleKey{Language: "de"}, i18n.LocaleKey{Language: "en"}),
			middlewares.WithLocaleSources(middlewares.FromQuery("lang")),
		)(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/?lang=de_CH", nil)
		require.Equal(t, "Hallo, Anna!", serve(h, req).Body.String())

		req = httptest.NewRequest(http.MethodGet, "/?lang=not/valid", nil)
		req.Header.Set("Accept-Language", "ja")
		require.Equal(t, "Hi, Anna!", serve(h, req).Body.String())
	})

	t.Run("no locale signal uses resolver default", func(t *testing.T) {
		t.Parallel()
		german, err := i18n.NewResolver(i18n.MemoryLoader{
			"messages":    props.FromPairs("greeting", "Hello, {0}!"),
			"messages_en": props.FromPairs("greeting", "Hi, {0}!"),
			"messages_de": props.FromPairs("greeting", "Hallo, {0}!"),
		}, i18n.WithDefaultLocale(i18n.LocaleKey{Language: "de"}))
		require.NoError(t, err)

		h := middlewares.Locale(german, "messages")(http.HandlerFunc(greet))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "Hallo, Anna!", rec.Body.String())
		require.Equal(t, "de", rec.Header().Get("Content-Language"))

		restricted := middlewares.Locale(german, "messages",
			middlewares.WithAvailableLocales(i18n.LocaleKey{Language: "en"}, i18n.LocaleKey{Language: "de"}),
		)(http.HandlerFunc(greet))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja")
		require.Equal(t, "Hallo, Anna!", serve(restricted, req).Body.String())
	})

	t.Run("chi route parameter", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Route("/{lang}", func(r chi.Router) {
			r.Use(middlewares.Locale(resolver, "messages",
				middlewares.WithLocaleSources(middlewares.FromURLParam("lang")),
			))
			r.Get("/hello", greet)
		})

		rec := serve(r, httptest.NewRequest(http.MethodGet, "/de/hello", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Hallo, Anna!", rec.Body.String())
	})

	t.Run("resolve failure", func(t *testing.T) {
		t.Parallel()
		empty, err := i18n.NewResolver(i18n.MemoryLoader{})
		require.NoError(t, err)

		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler reached without a bundle")
		})

		rec := serve(middlewares.Locale(empty, "messages")(next), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		custom := middlewares.Locale(empty, "messages",
			middlewares.WithLocaleErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
				require.ErrorIs(t, err, i18n.ErrMissingBundle)
				w.WriteHeader(http.StatusNotFound)
			}),
		)(next)
		rec = serve(custom, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("locale reaches log records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, err := logger.New(&buf, logger.Config{Format: "json"})
		require.NoError(t, err)

		h := middlewares.Locale(resolver, "messages")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			log.InfoContext(r.Context(), "handled")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de")
		serve(h, req)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "de", rec["locale"])
	})
}

func TestTranslatorFromContext_Missing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Nil(t, middlewares.TranslatorFromContext(req.Context()))
}

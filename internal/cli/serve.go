package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lingua/middlewares"
	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/cookie"
	"github.com/dmitrymomot/lingua/pkg/health"
	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/pronoun"
	"github.com/dmitrymomot/lingua/pkg/richtext"
)

const (
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxHeaderBytes    = 1 << 20 // 1MB

	localeCookie = "lang"
)

func serveCommand() command {
	return command{
		summary: "serve catalogs and translations over HTTP",
		setup: func(fs *flag.FlagSet) runFunc {
			addr := fs.String("addr", "", "listen address; overrides LINGUA_ADDR")

			return func(ctx context.Context, rt *runtime, _ []string, _ Streams) error {
				if *addr != "" {
					rt.cfg.Server.Addr = *addr
				}
				return serve(ctx, rt)
			}
		},
	}
}

// serve blocks until ctx is done or the listener fails, then shuts the
// server down within the configured timeout.
func serve(ctx context.Context, rt *runtime) error {
	handler, err := rt.router(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              rt.cfg.Server.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
		// Requests outlive the signal so Shutdown can drain them.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	if err := rt.startRefresher(bgCtx); err != nil {
		_ = ln.Close()
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.log.Info("shutting down server")
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rt.cfg.Server.ShutdownTimeout)
	defer cancel()

	// Store, cache and connection hooks run when Main closes the runtime.
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	rt.log.Info("server stopped")
	return nil
}

// startRefresher clears the catalog cache on the configured schedule.
func (rt *runtime) startRefresher(ctx context.Context) error {
	if rt.cfg.Cache.Refresh == "" || rt.cache == nil {
		return nil
	}
	ref, err := cache.NewRefresher(rt.cache, rt.cfg.Cache.Refresh, cache.WithRefreshLogger(rt.log))
	if err != nil {
		return err
	}
	rt.log.Info("catalog refresh scheduled",
		slog.String("schedule", rt.cfg.Cache.Refresh),
		slog.Time("next", ref.Next(time.Now())),
	)
	go func() { _ = ref.Run(ctx) }()
	return nil
}

// router mounts health probes and the catalog API.
func (rt *runtime) router(ctx context.Context) (http.Handler, error) {
	res, err := rt.resolver(ctx)
	if err != nil {
		return nil, err
	}
	locales, err := rt.cfg.locales()
	if err != nil {
		return nil, err
	}
	jar, err := cookie.New(
		cookie.WithSecret(rt.cfg.Server.CookieSecret),
		cookie.WithSecure(rt.cfg.Server.CookieSecure),
	)
	if err != nil {
		return nil, err
	}
	rich := richtext.New()

	r := chi.NewRouter()
	r.Use(middlewares.RequestID, middlewares.Recover(rt.log))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(rt.checks, health.WithLogger(rt.log)))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/candidates/{locale}", rt.candidatesHandler)
		r.Get("/catalogs/{base}/{locale}", rt.catalogHandler(res))
		r.Put("/locale/{locale}", localeHandler(jar))
		r.Delete("/locale", func(w http.ResponseWriter, _ *http.Request) {
			jar.Delete(w, localeCookie)
			w.WriteHeader(http.StatusNoContent)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Locale(res, rt.cfg.BaseID,
				middlewares.WithAvailableLocales(locales...),
				middlewares.WithLocaleSources(
					middlewares.FromQuery("lang"),
					middlewares.FromHeader("X-Locale"),
					cookieSource(jar, localeCookie),
				),
				middlewares.WithLocaleLogger(rt.log),
			))
			r.Get("/translate/{key}", rt.translateHandler(rich))
		})
	})

	return r, nil
}

type catalogResponse struct {
	Locale   string            `json:"locale"`
	Chain    []string          `json:"chain"`
	Messages map[string]string `json:"messages"`
}

type translateResponse struct {
	Locale string `json:"locale"`
	Key    string `json:"key"`
	Text   string `json:"text"`
}

type candidatesResponse struct {
	Locale     string   `json:"locale"`
	Candidates []string `json:"candidates"`
	Resources  []string `json:"resources"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (rt *runtime) candidatesHandler(w http.ResponseWriter, r *http.Request) {
	key, err := i18n.ParseLocaleKey(chi.URLParam(r, "locale"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := candidatesResponse{Locale: key.String()}
	for _, c := range i18n.Candidates(key) {
		resp.Candidates = append(resp.Candidates, c.String())
		resp.Resources = append(resp.Resources, i18n.ResourceName(rt.cfg.BaseID, c)+rt.cfg.Extension)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *runtime) catalogHandler(res *i18n.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := i18n.ParseLocaleKey(chi.URLParam(r, "locale"))
		if err != nil {
			writeError(w, err)
			return
		}

		b, err := res.Resolve(r.Context(), chi.URLParam(r, "base"), key)
		if err != nil {
			rt.log.WarnContext(r.Context(), "resolve catalog", slog.Any("error", err))
			writeError(w, err)
			return
		}

		resp := catalogResponse{
			Locale:   b.Locale().String(),
			Messages: make(map[string]string),
		}
		for _, k := range b.Chain() {
			resp.Chain = append(resp.Chain, k.String())
		}
		for _, k := range chainKeys(b) {
			resp.Messages[k], _ = b.Lookup(k)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// cookieSource reads the locale chosen through PUT /v1/locale. Forged
// signed cookies read as absent.
func cookieSource(jar *cookie.Manager, name string) middlewares.Source {
	return func(r *http.Request) (string, bool) {
		v, err := jar.Get(r, name)
		return v, err == nil && v != ""
	}
}

// localeHandler stores the locale preference of the client.
func localeHandler(jar *cookie.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := i18n.ParseLocaleKey(chi.URLParam(r, "locale"))
		if err != nil {
			writeError(w, err)
			return
		}
		jar.Set(w, localeCookie, key.String())
		w.WriteHeader(http.StatusNoContent)
	}
}

// translateHandler formats {key} with the repeated "arg" query values.
// Repeated "as" values name the participants of @n markers and "render"
// selects a richtext mode.
func (rt *runtime) translateHandler(rich *richtext.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr := middlewares.TranslatorFromContext(r.Context())
		key := chi.URLParam(r, "key")
		query := r.URL.Query()

		mode, err := richtext.ParseMode(query.Get("render"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		people, err := participants(query["as"]).resolve(tr.Locale())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		args := make([]any, 0, len(query["arg"]))
		for _, a := range query["arg"] {
			args = append(args, parseArg(a))
		}

		text, err := pronoun.Format(tr.Bundle(), key, people, args...)
		if err == nil {
			text, err = rich.Render(text, mode)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, translateResponse{Locale: tr.Locale().String(), Key: key, Text: text})
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, i18n.ErrInvalidLocale):
		status = http.StatusBadRequest
	case errors.Is(err, i18n.ErrMissingBundle), errors.Is(err, i18n.ErrMissingKey):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

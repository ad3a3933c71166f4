package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/logger"
)

type translatorKey struct{}

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Available    []i18n.LocaleKey
	Sources      Sources
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
	Logger       *slog.Logger
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithAvailableLocales restricts results to the given locales; requests
// asking for anything else get the closest available one.
func WithAvailableLocales(keys ...i18n.LocaleKey) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Available = keys
	}
}

// WithLocaleSources replaces the explicit sources consulted before
// Accept-Language. Default: the "lang" cookie.
func WithLocaleSources(sources ...Source) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Sources = sources
	}
}

// WithLocaleErrorHandler sets the response written when no bundle can be
// resolved. Default: 500 with a plain text body.
func WithLocaleErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.ErrorHandler = fn
	}
}

// WithLocaleLogger sets the logger for resolve failures.
func WithLocaleLogger(l *slog.Logger) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Logger = l
	}
}

// Locale resolves the baseID bundle for each request and stores an
// i18n.Translator in the request context.
//
// The locale comes from the first configured source that yields a
// parsable value, then from Accept-Language, then from the resolver's
// default. The response gets a Content-Language header naming the bundle
// locale, and the locale is attached to log records through
// logger.WithAttrs.
func Locale(r *i18n.Resolver, baseID string, opts ...LocaleOption) func(http.Handler) http.Handler {
	cfg := &LocaleConfig{
		Sources: Sources{FromCookie("lang")},
		Logger:  logger.Discard(),
		ErrorHandler: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			key := requestLocale(req, cfg, r.DefaultLocale())

			ctx := req.Context()
			b, err := r.Resolve(ctx, baseID, key)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "resolve bundle",
					slog.String("base", baseID),
					slog.String("locale", key.String()),
					slog.Any("error", err),
				)
				cfg.ErrorHandler(w, req, err)
				return
			}

			w.Header().Add("Vary", "Accept-Language")
			if !b.Locale().IsRoot() {
				w.Header().Set("Content-Language", b.Locale().Tag().String())
			}

			ctx = context.WithValue(ctx, translatorKey{}, i18n.NewTranslator(b))
			ctx = logger.WithAttrs(ctx, slog.String("locale", b.Locale().String()))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func requestLocale(req *http.Request, cfg *LocaleConfig, fallback i18n.LocaleKey) i18n.LocaleKey {
	if v, ok := cfg.Sources.Extract(req); ok {
		if key, err := i18n.ParseLocaleKey(v); err == nil && !key.IsRoot() {
			if len(cfg.Available) == 0 || slices.Contains(cfg.Available, key) {
				return key
			}
			// Reuse the Accept-Language matcher for explicit choices.
			return i18n.MatchAcceptLanguage(key.Tag().String(), cfg.Available, fallback)
		}
	}

	return i18n.MatchAcceptLanguage(req.Header.Get("Accept-Language"), cfg.Available, fallback)
}

// TranslatorFromContext returns the translator stored by Locale, or nil.
func TranslatorFromContext(ctx context.Context) *i18n.Translator {
	tr, _ := ctx.Value(translatorKey{}).(*i18n.Translator)
	return tr
}

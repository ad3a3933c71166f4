package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/lingua/pkg/props"
)

// Loader fetches the catalog of one locale of a resource family.
//
// Load must return an error matching ErrCatalogNotFound when no resource
// exists for the locale; any other error aborts resolution.
type Loader interface {
	Load(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error)

func (f LoaderFunc) Load(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error) {
	return f(ctx, baseID, key)
}

// Resolver builds bundle chains from catalogs fetched by a Loader.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	loader        Loader
	logger        *slog.Logger
	defaultLocale *LocaleKey
	policy        *MissingKeyPolicy
	onMissingKey  func(locale LocaleKey, key string)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaultLocale sets the locale tried when nothing more specific than
// Root exists for the requested one. Without it the process-wide
// DefaultLocale is read on every Resolve.
func WithDefaultLocale(k LocaleKey) Option {
	return func(r *Resolver) {
		r.defaultLocale = &k
	}
}

// WithMissingKeyPolicy fixes the policy of the bundles the resolver
// builds. Without it bundles follow CurrentMissingKeyPolicy.
func WithMissingKeyPolicy(p MissingKeyPolicy) Option {
	return func(r *Resolver) {
		r.policy = &p
	}
}

// WithMissingKeyHandler registers a callback invoked whenever a lookup on
// one of the resolver's bundles finds no value. Useful for spotting
// untranslated keys during development.
func WithMissingKeyHandler(fn func(locale LocaleKey, key string)) Option {
	return func(r *Resolver) {
		r.onMissingKey = fn
	}
}

// WithLogger sets the logger for skipped candidates and fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver over loader.
func NewResolver(loader Loader, opts ...Option) (*Resolver, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}

	r := &Resolver{
		loader: loader,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// DefaultLocale returns the fallback locale in effect for the next Resolve.
func (r *Resolver) DefaultLocale() LocaleKey {
	if r.defaultLocale != nil {
		return *r.defaultLocale
	}
	return DefaultLocale()
}

// Resolve returns the most specific bundle available for key, linked to its
// less specific ancestors.
//
// Candidates of key are loaded from Root up; locales without a catalog are
// skipped. If only the Root catalog was found and key is not Root, the
// default locale is tried the same way, reusing the Root bundle already
// built. When the default locale has nothing more specific either, the Root
// bundle is returned. ErrMissingBundle is returned when no candidate of
// either locale has a catalog.
func (r *Resolver) Resolve(ctx context.Context, baseID string, key LocaleKey) (*Bundle, error) {
	var (
		target     = key
		defaultKey = r.DefaultLocale()
		base       *Bundle
		bundle     *Bundle
	)

	for {
		candidates := Candidates(target)

		var err error
		bundle, err = r.chain(ctx, baseID, candidates, base)
		if err != nil {
			return nil, err
		}

		if bundle != nil {
			if !bundle.locale.IsRoot() || bundle.locale == key {
				break
			}
			if len(candidates) == 1 && bundle.locale == candidates[0] {
				break
			}
			if base == nil {
				base = bundle
			}
		}

		if target == defaultKey {
			break
		}

		r.logger.DebugContext(ctx, "no locale-specific catalog, falling back to default locale",
			slog.String("base_id", baseID),
			slog.String("locale", target.String()),
			slog.String("default_locale", defaultKey.String()),
		)
		target = defaultKey
	}

	if bundle == nil {
		if base == nil {
			return nil, fmt.Errorf("%w: base %q, locale %q", ErrMissingBundle, baseID, key)
		}
		bundle = base
	}

	return bundle, nil
}

// chain loads candidates from the least specific up, linking each found
// catalog under the previous one. A Root bundle from an earlier round is
// reused instead of loading Root again.
func (r *Resolver) chain(ctx context.Context, baseID string, candidates []LocaleKey, base *Bundle) (*Bundle, error) {
	var parent *Bundle

	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if c.IsRoot() && base != nil {
			parent = base
			continue
		}

		cat, err := r.loader.Load(ctx, baseID, c)
		if errors.Is(err, ErrCatalogNotFound) || (err == nil && cat == nil) {
			r.logger.DebugContext(ctx, "catalog not found",
				slog.String("base_id", baseID),
				slog.String("locale", c.String()),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("i18n: loading %q for locale %q: %w", baseID, c, err)
		}

		parent = r.newBundle(c, cat, parent)
	}

	return parent, nil
}

func (r *Resolver) newBundle(locale LocaleKey, cat *props.Catalog, parent *Bundle) *Bundle {
	b := NewBundle(locale, cat, parent)
	b.policy = r.policy
	b.onMissingKey = r.onMissingKey
	return b
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/props"
)

// CachedCatalog is the cache entry of a CachedLoader. Missing records that
// the underlying loader had no catalog, so absent locales are not probed on
// every resolve.
type CachedCatalog struct {
	Catalog *props.Catalog `json:"catalog,omitempty"`
	Missing bool           `json:"missing,omitempty"`
}

// CachedLoader memoizes another loader. Concurrent misses for the same
// resource trigger a single underlying load.
type CachedLoader struct {
	next  Loader
	cache cache.Cache[CachedCatalog]
	ttl   time.Duration
}

// NewCachedLoader wraps next with c. Entries are stored with ttl; zero
// means the cache's default TTL.
func NewCachedLoader(next Loader, c cache.Cache[CachedCatalog], ttl time.Duration) *CachedLoader {
	return &CachedLoader{next: next, cache: c, ttl: ttl}
}

// Load returns a private copy of the cached catalog, loading it on a miss.
func (l *CachedLoader) Load(ctx context.Context, baseID string, key LocaleKey) (*props.Catalog, error) {
	name := ResourceName(baseID, key)

	entry, err := cache.GetOrSet(ctx, l.cache, "catalog:"+name, func(ctx context.Context) (CachedCatalog, time.Duration, error) {
		cat, err := l.next.Load(ctx, baseID, key)
		if errors.Is(err, ErrCatalogNotFound) {
			return CachedCatalog{Missing: true}, l.ttl, nil
		}
		if err != nil {
			return CachedCatalog{}, 0, err
		}
		return CachedCatalog{Catalog: cat}, l.ttl, nil
	})
	if err != nil {
		return nil, err
	}

	if entry.Missing || entry.Catalog == nil {
		return nil, fmt.Errorf("%w: %s (cached)", ErrCatalogNotFound, name)
	}
	return entry.Catalog.Clone(), nil
}

// Invalidate drops the cached entry of one locale.
func (l *CachedLoader) Invalidate(ctx context.Context, baseID string, key LocaleKey) error {
	return l.cache.Delete(ctx, "catalog:"+ResourceName(baseID, key))
}

var _ Loader = (*CachedLoader)(nil)

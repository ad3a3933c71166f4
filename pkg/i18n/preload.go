package i18n

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Preload resolves baseID for every key concurrently and returns the
// bundles in the order of keys. It fails with the first resolve error.
func Preload(ctx context.Context, r *Resolver, baseID string, keys ...LocaleKey) ([]*Bundle, error) {
	bundles := make([]*Bundle, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, k := range keys {
		g.Go(func() error {
			b, err := r.Resolve(ctx, baseID, k)
			if err != nil {
				return err
			}
			bundles[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundles, nil
}

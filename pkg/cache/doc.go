// Package cache provides the in-process and Redis caches used to keep
// decoded catalogs between requests.
//
// Memory suits a single process and tests; Redis lets several instances
// share decoded catalogs. Both implement [Cache]:
//
//	c := cache.NewMemory[i18n.CachedCatalog](
//		cache.WithDefaultTTL(10*time.Minute),
//		cache.WithMaxEntries(512),
//	)
//	defer c.Close()
//
//	shared := cache.NewRedis(client,
//		cache.WithPrefix[i18n.CachedCatalog]("lingua"),
//	)
//
// [GetOrSet] collapses concurrent misses for a key into one load.
//
// A [Refresher] clears a cache on a cron schedule, so catalogs edited in
// storage are reloaded without restarting the process:
//
//	r, err := cache.NewRefresher(c, "@every 5m", cache.WithRefreshLogger(log))
//	go r.Run(ctx)
package cache

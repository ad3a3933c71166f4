package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/db"
	"github.com/dmitrymomot/lingua/pkg/health"
	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/redis"
	"github.com/dmitrymomot/lingua/pkg/storage"
)

// runtime holds the connections opened for one command. Connections are
// opened on first use and released by Close in reverse order.
type runtime struct {
	cfg Config
	log *slog.Logger

	store  storage.Storage
	pool   *pgxpool.Pool
	client goredis.UniversalClient
	cache  cache.Clearer

	checks  health.Checks
	closers []func(context.Context) error
}

func newRuntime(cfg Config, log *slog.Logger) *runtime {
	return &runtime{cfg: cfg, log: log, checks: health.Checks{}}
}

func (rt *runtime) onClose(fn func(context.Context) error) {
	rt.closers = append(rt.closers, fn)
}

// Close runs the registered shutdown hooks, newest first.
func (rt *runtime) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range slices.Backward(rt.closers) {
		if err := fn(ctx); err != nil {
			rt.log.ErrorContext(ctx, "shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func (rt *runtime) redisClient(ctx context.Context) (goredis.UniversalClient, error) {
	if rt.client != nil {
		return rt.client, nil
	}
	client, err := redis.OpenConfig(ctx, rt.cfg.Redis)
	if err != nil {
		return nil, err
	}
	rt.client = client
	rt.checks["redis"] = redis.Healthcheck(client)
	rt.onClose(redis.Shutdown(client))
	return client, nil
}

func (rt *runtime) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if rt.pool != nil {
		return rt.pool, nil
	}
	if rt.cfg.Database.ConnectionString == "" {
		return nil, ErrNoPostgres
	}
	pool, err := db.Open(ctx, rt.cfg.Database)
	if err != nil {
		return nil, err
	}
	rt.pool = pool
	rt.checks["postgres"] = db.Healthcheck(pool)
	rt.onClose(db.Shutdown(pool))
	return pool, nil
}

// storage opens the configured catalog store.
func (rt *runtime) storage(ctx context.Context) (storage.Storage, error) {
	if rt.store != nil {
		return rt.store, nil
	}

	var (
		store storage.Storage
		err   error
	)
	switch rt.cfg.Store {
	case StoreDir:
		var dir *storage.Dir
		dir, err = storage.OpenDir(rt.cfg.Dir)
		if err == nil {
			rt.onClose(func(context.Context) error { return dir.Close() })
			store = dir
		}
	case StoreS3:
		store, err = storage.New(rt.cfg.S3)
	case StoreRedis:
		var client goredis.UniversalClient
		client, err = rt.redisClient(ctx)
		if err == nil {
			store = storage.NewRedis(client, rt.cfg.RedisPrefix+"catalog:")
		}
	case StorePostgres:
		var pool *pgxpool.Pool
		pool, err = rt.postgres(ctx)
		if err == nil {
			store = storage.NewPostgres(pool)
		}
	default:
		err = fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, rt.cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", rt.cfg.Store, err)
	}

	rt.store = store
	rt.checks["store"] = storeCheck(store, i18n.ResourceName(rt.cfg.BaseID, i18n.Root)+rt.cfg.Extension)
	rt.log.DebugContext(ctx, "catalog store opened", slog.String("store", rt.cfg.Store))
	return store, nil
}

// storeCheck reads the root catalog. A missing resource still proves the
// store answers.
func storeCheck(store storage.Reader, name string) health.CheckFunc {
	return func(ctx context.Context) error {
		rc, err := store.Open(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = io.Copy(io.Discard, rc)
		return errors.Join(err, rc.Close())
	}
}

// loader builds the catalog loader, wrapped in the configured cache.
func (rt *runtime) loader(ctx context.Context) (i18n.Loader, error) {
	store, err := rt.storage(ctx)
	if err != nil {
		return nil, err
	}
	var loader i18n.Loader = i18n.NewStorageLoader(store, i18n.WithExtension(rt.cfg.Extension))

	var c cache.Cache[i18n.CachedCatalog]
	switch rt.cfg.Cache.Backend {
	case CacheNone:
		return loader, nil
	case CacheMemory:
		mem := cache.NewMemory[i18n.CachedCatalog](
			cache.WithDefaultTTL(rt.cfg.Cache.TTL),
			cache.WithMaxEntries(rt.cfg.Cache.MaxEntries),
		)
		rt.onClose(func(context.Context) error { return mem.Close() })
		c = mem
	case CacheRedis:
		client, err := rt.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		c = cache.NewRedis[i18n.CachedCatalog](client,
			cache.WithPrefix[i18n.CachedCatalog](rt.cfg.cachePrefix()),
			cache.WithRedisDefaultTTL[i18n.CachedCatalog](rt.cfg.Cache.TTL),
		)
	default:
		return nil, fmt.Errorf("%w: unknown cache %q", ErrInvalidConfig, rt.cfg.Cache.Backend)
	}

	rt.cache = c
	return i18n.NewCachedLoader(loader, c, rt.cfg.Cache.TTL), nil
}

// resolver builds a resolver over the configured store and cache.
func (rt *runtime) resolver(ctx context.Context) (*i18n.Resolver, error) {
	loader, err := rt.loader(ctx)
	if err != nil {
		return nil, err
	}

	def, err := rt.cfg.defaultLocale()
	if err != nil {
		return nil, err
	}
	policy, _ := i18n.ParseMissingKeyPolicy(rt.cfg.MissingKeys)

	return i18n.NewResolver(loader,
		i18n.WithDefaultLocale(def),
		i18n.WithMissingKeyPolicy(policy),
		i18n.WithLogger(rt.log),
		i18n.WithMissingKeyHandler(func(locale i18n.LocaleKey, key string) {
			rt.log.Warn("missing resource key",
				slog.String("locale", locale.String()),
				slog.String("key", key),
			)
		}),
	)
}

package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lingua/pkg/db"
	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/logger"
	"github.com/dmitrymomot/lingua/pkg/redis"
	"github.com/dmitrymomot/lingua/pkg/storage"
)

// Store backends.
const (
	StoreDir      = "dir"
	StoreS3       = "s3"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is shared by every subcommand.
//
// Values come from the environment first, then from the YAML file named by
// -config, then from flags.
type Config struct {
	ConfigFile string `env:"LINGUA_CONFIG" yaml:"-"`

	Store         string `env:"LINGUA_STORE" envDefault:"dir" yaml:"store"`
	Dir           string `env:"LINGUA_DIR" envDefault:"." yaml:"dir"`
	Extension     string `env:"LINGUA_EXTENSION" envDefault:".properties" yaml:"extension"`
	BaseID        string `env:"LINGUA_BASE" envDefault:"messages" yaml:"base"`
	DefaultLocale string `env:"LINGUA_DEFAULT_LOCALE" envDefault:"en" yaml:"default_locale"`
	MissingKeys   string `env:"LINGUA_MISSING_KEYS" envDefault:"error" yaml:"missing_keys"`
	RedisPrefix   string `env:"LINGUA_REDIS_PREFIX" envDefault:"lingua:" yaml:"redis_prefix"`

	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`

	Log      logger.Config  `yaml:"log"`
	S3       storage.Config `envPrefix:"S3_" yaml:"s3"`
	Redis    redis.Config   `yaml:"redis"`
	Database db.Config      `yaml:"database"`
}

// CacheConfig controls the catalog cache placed in front of the store.
type CacheConfig struct {
	Backend    string        `env:"LINGUA_CACHE" envDefault:"memory" yaml:"backend"`
	TTL        time.Duration `env:"LINGUA_CACHE_TTL" envDefault:"10m" yaml:"ttl"`
	MaxEntries int           `env:"LINGUA_CACHE_MAX_ENTRIES" envDefault:"1024" yaml:"max_entries"`
	// Refresh is a cron expression; the whole cache is cleared on each
	// activation. Empty disables it.
	Refresh string `env:"LINGUA_CACHE_REFRESH" yaml:"refresh"`
}

// ServerConfig is read by the serve command.
type ServerConfig struct {
	Addr            string        `env:"LINGUA_ADDR" envDefault:":8080" yaml:"addr"`
	ShutdownTimeout time.Duration `env:"LINGUA_SHUTDOWN_TIMEOUT" envDefault:"10s" yaml:"shutdown_timeout"`
	// Locales restricts Accept-Language negotiation. Empty accepts any.
	Locales []string `env:"LINGUA_LOCALES" envSeparator:"," yaml:"locales"`
	// CookieSecret signs the locale cookie; empty leaves it unsigned.
	CookieSecret string `env:"LINGUA_COOKIE_SECRET" yaml:"cookie_secret"`
	CookieSecure bool   `env:"LINGUA_COOKIE_SECURE" yaml:"cookie_secure"`
}

// ParseConfig reads the environment and the optional YAML file, then
// parses args with fs. Subcommands register their own flags on fs before
// calling it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file")

	var bound []string
	bind := func(p *string, name, usage string) {
		fs.StringVar(p, name, *p, usage)
		bound = append(bound, name)
	}
	bind(&cfg.Store, "store", "catalog store: dir, s3, redis or postgres")
	bind(&cfg.Dir, "dir", "catalog directory of the dir store")
	bind(&cfg.BaseID, "base", "catalog family name")
	bind(&cfg.DefaultLocale, "default-locale", "fallback locale")
	bind(&cfg.MissingKeys, "missing-keys", "missing key policy: error or sentinel")
	bind(&cfg.Cache.Backend, "cache", "catalog cache: none, memory or redis")
	bind(&cfg.Log.Level, "log-level", "log level")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		set := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })

		if err := loadFile(cfg.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}

		// Flags win over the file.
		for _, name := range bound {
			if v, ok := set[name]; ok {
				if err := fs.Set(name, v); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	switch c.Store {
	case StoreDir, StoreS3, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: unknown cache %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if _, ok := i18n.ParseMissingKeyPolicy(c.MissingKeys); !ok {
		return fmt.Errorf("%w: unknown missing key policy %q", ErrInvalidConfig, c.MissingKeys)
	}
	if _, err := c.defaultLocale(); err != nil {
		return err
	}
	if _, err := c.locales(); err != nil {
		return err
	}
	if strings.TrimSpace(c.BaseID) == "" {
		return fmt.Errorf("%w: empty base name", ErrInvalidConfig)
	}
	return nil
}

func (c Config) defaultLocale() (i18n.LocaleKey, error) {
	k, err := i18n.ParseLocaleKey(c.DefaultLocale)
	if err != nil {
		return i18n.LocaleKey{}, fmt.Errorf("%w: default locale: %w", ErrInvalidConfig, err)
	}
	return k, nil
}

func (c Config) locales() ([]i18n.LocaleKey, error) {
	keys := make([]i18n.LocaleKey, 0, len(c.Server.Locales))
	for _, s := range c.Server.Locales {
		k, err := i18n.ParseLocaleKey(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, s, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// cachePrefix namespaces the Redis catalog cache. Every process sharing
// it must agree on the prefix.
func (c Config) cachePrefix() string {
	return c.RedisPrefix + "cache:"
}

package cli_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/internal/cli"
)

func parse(t *testing.T, args ...string) (cli.Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return cli.ParseConfig(fs, args)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	require.Equal(t, cli.StoreDir, cfg.Store)
	require.Equal(t, "messages", cfg.BaseID)
	require.Equal(t, ".properties", cfg.Extension)
	require.Equal(t, "en", cfg.DefaultLocale)
	require.Equal(t, "error", cfg.MissingKeys)
	require.Equal(t, cli.CacheMemory, cfg.Cache.Backend)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "lingua_migrations", cfg.Database.MigrationsTable)
}

func TestParseConfig_Env(t *testing.T) {
	t.Setenv("LINGUA_STORE", "s3")
	t.Setenv("S3_BUCKET", "catalogs")
	t.Setenv("LINGUA_LOCALES", "de,fr_CH")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := parse(t)
	require.NoError(t, err)
	require.Equal(t, cli.StoreS3, cfg.Store)
	require.Equal(t, "catalogs", cfg.S3.Bucket)
	require.Equal(t, []string{"de", "fr_CH"}, cfg.Server.Locales)
	require.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
}

func TestParseConfig_FileAndFlags(t *testing.T) {
	t.Setenv("LINGUA_BASE", "from-env")

	path := filepath.Join(t.TempDir(), "lingua.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store: postgres
base: from-file
missing_keys: sentinel
cache:
  backend: none
  ttl: 1m
database:
  url: postgres://localhost/lingua
`), 0o600))

	cfg, err := parse(t, "-config", path, "-base", "from-flag")
	require.NoError(t, err)
	require.Equal(t, cli.StorePostgres, cfg.Store)
	require.Equal(t, "from-flag", cfg.BaseID)
	require.Equal(t, "sentinel", cfg.MissingKeys)
	require.Equal(t, cli.CacheNone, cfg.Cache.Backend)
	require.Equal(t, time.Minute, cfg.Cache.TTL)
	require.Equal(t, "postgres://localhost/lingua", cfg.Database.ConnectionString)

	// The file wins over the environment.
	cfg, err = parse(t, "-config", path)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.BaseID)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "store", args: []string{"-store", "ftp"}},
		{name: "cache", args: []string{"-cache", "disk"}},
		{name: "missing key policy", args: []string{"-missing-keys", "ignore"}},
		{name: "default locale", args: []string{"-default-locale", "e1"}},
		{name: "empty base", args: []string{"-base", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			require.ErrorIs(t, err, cli.ErrInvalidConfig)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := parse(t, "-config", filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("locales", func(t *testing.T) {
		t.Setenv("LINGUA_LOCALES", "de,not a locale")
		_, err := parse(t)
		require.ErrorIs(t, err, cli.ErrInvalidConfig)
	})
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/lingua/pkg/cache"
	"github.com/dmitrymomot/lingua/pkg/db"
	"github.com/dmitrymomot/lingua/pkg/i18n"
	"github.com/dmitrymomot/lingua/pkg/pronoun"
	"github.com/dmitrymomot/lingua/pkg/props"
	"github.com/dmitrymomot/lingua/pkg/richtext"
	"github.com/dmitrymomot/lingua/pkg/storage"
)

func fmtCommand() command {
	return command{
		summary: "rewrite catalog files in canonical form",
		setup: func(fs *flag.FlagSet) runFunc {
			write := fs.Bool("w", false, "write result to the source file instead of stdout")

			return func(_ context.Context, _ *runtime, args []string, s Streams) error {
				if len(args) == 0 {
					if *write {
						return fmt.Errorf("%w: -w needs file arguments", ErrUsage)
					}
					return canonical(s.Out, s.In)
				}

				for _, path := range args {
					if err := fmtFile(path, *write, s.Out); err != nil {
						return err
					}
				}
				return nil
			}
		},
	}
}

// canonical decodes a catalog from r and encodes it to w without a
// timestamp header.
func canonical(w io.Writer, r io.Reader) error {
	cat, err := props.Load(r)
	if err != nil {
		return err
	}
	return props.Store(w, cat, "", props.WithoutTimestamp())
}

func fmtFile(path string, write bool, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	err = canonical(&buf, f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if !write {
		_, err = out.Write(buf.Bytes())
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}

// bundleFlags registers -locale and returns a function resolving the
// bundle it names.
func bundleFlags(fs *flag.FlagSet) func(ctx context.Context, rt *runtime) (*i18n.Bundle, error) {
	locale := fs.String("locale", "", "locale to resolve; empty means the default locale")

	return func(ctx context.Context, rt *runtime) (*i18n.Bundle, error) {
		key, err := i18n.ParseLocaleKey(*locale)
		if err != nil {
			return nil, err
		}
		if *locale == "" {
			if key, err = rt.cfg.defaultLocale(); err != nil {
				return nil, err
			}
		}

		r, err := rt.resolver(ctx)
		if err != nil {
			return nil, err
		}
		return r.Resolve(ctx, rt.cfg.BaseID, key)
	}
}

func keysCommand() command {
	return command{
		summary: "list the keys visible through a locale chain",
		setup: func(fs *flag.FlagSet) runFunc {
			bundle := bundleFlags(fs)
			values := fs.Bool("values", false, "print key=value lines")

			return func(ctx context.Context, rt *runtime, _ []string, s Streams) error {
				b, err := bundle(ctx, rt)
				if err != nil {
					return err
				}

				for _, key := range chainKeys(b) {
					if !*values {
						fmt.Fprintln(s.Out, key)
						continue
					}
					v, _ := b.Lookup(key)
					fmt.Fprintf(s.Out, "%s=%s\n", props.EscapeKey(key), props.EscapeValue(v))
				}
				return nil
			}
		},
	}
}

// chainKeys lists the keys of b and its ancestors, most specific catalog
// first, without duplicates.
func chainKeys(b *i18n.Bundle) []string {
	seen := make(map[string]struct{})
	var keys []string
	for cur := b; cur != nil; cur = cur.Parent() {
		for _, k := range cur.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

func getCommand() command {
	return command{
		summary: "print raw values of keys",
		setup: func(fs *flag.FlagSet) runFunc {
			bundle := bundleFlags(fs)

			return func(ctx context.Context, rt *runtime, args []string, s Streams) error {
				if len(args) == 0 {
					return fmt.Errorf("%w: get needs at least one key", ErrUsage)
				}
				b, err := bundle(ctx, rt)
				if err != nil {
					return err
				}

				for _, key := range args {
					v, err := b.Get(key)
					if err != nil {
						return err
					}
					fmt.Fprintln(s.Out, v)
				}
				return nil
			}
		},
	}
}

// participants collects repeated "-as tag[:name]" flags.
type participants []string

func (p *participants) String() string { return strings.Join(*p, ",") }

func (p *participants) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("empty participant")
	}
	*p = append(*p, v)
	return nil
}

// resolve maps every participant onto a table of the tongue of locale.
// Unknown locales use English tables.
func (p participants) resolve(locale i18n.LocaleKey) ([]pronoun.Participant, error) {
	tongue, ok := pronoun.Default().Lookup(locale)
	if !ok {
		tongue = pronoun.English()
	}

	out := make([]pronoun.Participant, 0, len(p))
	for _, v := range p {
		tag, name, _ := strings.Cut(v, ":")
		tbl, ok := tongue.Table(tag)
		if !ok {
			return nil, fmt.Errorf("%w: unknown pronoun table %q, known: %s",
				ErrUsage, tag, strings.Join(tongue.Tags(), ", "))
		}
		out = append(out, pronoun.Participant{Name: name, Table: tbl})
	}
	return out, nil
}

// parseArg turns a command line argument into an int64, a float64 or a
// string so that number placeholders format it.
func parseArg(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func formatCommand() command {
	return command{
		summary: "format a template key with arguments",
		setup: func(fs *flag.FlagSet) runFunc {
			bundle := bundleFlags(fs)
			var as participants
			fs.Var(&as, "as", "participant as tag[:name], repeatable; the n-th one fills @n markers")
			render := fs.String("render", "", "output mode: raw, text, html or markdown")

			return func(ctx context.Context, rt *runtime, args []string, s Streams) error {
				if len(args) == 0 {
					return fmt.Errorf("%w: format needs a key", ErrUsage)
				}
				mode, err := richtext.ParseMode(*render)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrUsage, err)
				}
				b, err := bundle(ctx, rt)
				if err != nil {
					return err
				}
				people, err := as.resolve(b.Locale())
				if err != nil {
					return err
				}

				values := make([]any, 0, len(args)-1)
				for _, a := range args[1:] {
					values = append(values, parseArg(a))
				}

				out, err := pronoun.Format(b, args[0], people, values...)
				if err != nil {
					return err
				}
				if out, err = richtext.New().Render(out, mode); err != nil {
					return err
				}
				fmt.Fprintln(s.Out, out)
				return nil
			}
		},
	}
}

func candidatesCommand() command {
	return command{
		summary: "show the lookup order of locales",
		setup: func(fs *flag.FlagSet) runFunc {
			return func(_ context.Context, rt *runtime, args []string, s Streams) error {
				if len(args) == 0 {
					return fmt.Errorf("%w: candidates needs a locale", ErrUsage)
				}
				for _, arg := range args {
					key, err := i18n.ParseLocaleKey(arg)
					if err != nil {
						return err
					}
					fmt.Fprintf(s.Out, "%s:\n", arg)
					for _, c := range i18n.Candidates(key) {
						label := c.String()
						if c.IsRoot() {
							label = "ROOT"
						}
						fmt.Fprintf(s.Out, "  %-14s %s\n", label, i18n.ResourceName(rt.cfg.BaseID, c)+rt.cfg.Extension)
					}
				}
				return nil
			}
		},
	}
}

// catalogFile is a validated catalog read from disk.
type catalogFile struct {
	name string
	data []byte
}

// readCatalogs reads every file of dir with the given extension and checks
// that it decodes.
func readCatalogs(dir, ext string) ([]catalogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []catalogFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := props.Load(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		files = append(files, catalogFile{name: e.Name(), data: data})
	}
	return files, nil
}

func saveAll(ctx context.Context, store storage.Storage, files []catalogFile) error {
	for _, f := range files {
		if err := store.Save(ctx, f.name, bytes.NewReader(f.data)); err != nil {
			return fmt.Errorf("save %s: %w", f.name, err)
		}
	}
	return nil
}

func pushCommand() command {
	return command{
		summary: "upload catalog files from a directory to the store",
		setup: func(fs *flag.FlagSet) runFunc {
			from := fs.String("from", "", "directory holding the catalog files")

			return func(ctx context.Context, rt *runtime, _ []string, s Streams) error {
				if *from == "" {
					return fmt.Errorf("%w: push needs -from", ErrUsage)
				}
				files, err := readCatalogs(*from, rt.cfg.Extension)
				if err != nil {
					return err
				}

				// Postgres uploads are all-or-nothing.
				if rt.cfg.Store == StorePostgres {
					pool, err := rt.postgres(ctx)
					if err != nil {
						return err
					}
					err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
						return saveAll(ctx, storage.NewPostgres(tx), files)
					})
					if err != nil {
						return err
					}
				} else {
					store, err := rt.storage(ctx)
					if err != nil {
						return err
					}
					if err := saveAll(ctx, store, files); err != nil {
						return err
					}
				}

				if err := rt.clearSharedCache(ctx); err != nil {
					return err
				}

				rt.log.InfoContext(ctx, "catalogs pushed",
					slog.String("store", rt.cfg.Store),
					slog.Int("count", len(files)),
				)
				fmt.Fprintf(s.Out, "pushed %d catalogs\n", len(files))
				return nil
			}
		},
	}
}

// clearSharedCache drops the Redis catalog cache so that running servers
// see pushed catalogs. Memory caches live in other processes and expire
// on their own.
func (rt *runtime) clearSharedCache(ctx context.Context) error {
	if rt.cfg.Cache.Backend != CacheRedis {
		return nil
	}
	client, err := rt.redisClient(ctx)
	if err != nil {
		return err
	}
	c := cache.NewRedis[i18n.CachedCatalog](client, cache.WithPrefix[i18n.CachedCatalog](rt.cfg.cachePrefix()))
	return c.Clear(ctx)
}

func migrateCommand() command {
	return command{
		summary: "create or upgrade the Postgres catalog table",
		setup: func(fs *flag.FlagSet) runFunc {
			return func(ctx context.Context, rt *runtime, _ []string, s Streams) error {
				pool, err := rt.postgres(ctx)
				if err != nil {
					return err
				}
				if err := db.Migrate(ctx, pool, rt.cfg.Database.MigrationsTable, rt.log); err != nil {
					return err
				}
				fmt.Fprintln(s.Out, "migrations applied")
				return nil
			}
		},
	}
}

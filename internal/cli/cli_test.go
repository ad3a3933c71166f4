package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/internal/cli"
	"github.com/dmitrymomot/lingua/pkg/i18n"
)

// run executes a command against the testdata catalogs unless args pick
// another directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	if len(args) > 0 {
		args = append([]string{args[0], "-dir", "testdata", "-log-level", "error"}, args[1:]...)
	}
	var out, errOut bytes.Buffer
	err := cli.Main(context.Background(), args, cli.Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errOut,
	})
	return out.String(), err
}

func TestMain_Usage(t *testing.T) {
	t.Parallel()

	_, err := run(t, "")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = run(t, "", "translate")
	require.ErrorIs(t, err, cli.ErrUnknownCommand)

	var errOut bytes.Buffer
	err = cli.Main(context.Background(), []string{"help"}, cli.Streams{Out: io.Discard, Err: &errOut})
	require.NoError(t, err)
	require.Contains(t, errOut.String(), "candidates")
	require.Contains(t, errOut.String(), "serve")
}

func TestMain_Candidates(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "candidates", "de_CH")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "messages_de_CH.properties")
	require.Contains(t, lines[2], "messages_de.properties")
	require.Contains(t, lines[3], "ROOT")
	require.Contains(t, lines[3], "messages.properties")

	_, err = run(t, "", "candidates")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestMain_Get(t *testing.T) {
	t.Parallel()

	t.Run("falls back through the chain", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "get", "-locale", "de_CH", "farewell", "greeting", "shared")
		require.NoError(t, err)
		require.Equal(t, "Uf Wiederluege\nHallo, {0}!\n@1name shared @1my notes with @2me.\n", out)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "get", "-locale", "de", "nope")
		require.ErrorIs(t, err, i18n.ErrMissingKey)
	})

	t.Run("sentinel policy", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "get", "-locale", "de", "-missing-keys", "sentinel", "nope")
		require.NoError(t, err)
		require.Equal(t, "???nope???\n", out)
	})

	t.Run("no keys", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "get")
		require.ErrorIs(t, err, cli.ErrUsage)
	})
}

func TestMain_Keys(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "keys", "-locale", "de_CH")
	require.NoError(t, err)
	require.Equal(t, []string{"farewell", "greeting", "notice", "price", "shared"}, sortedLines(out))

	out, err = run(t, "", "keys", "-locale", "de_CH", "-values")
	require.NoError(t, err)
	require.Contains(t, out, "farewell=Uf Wiederluege\n")
}

func TestMain_Format(t *testing.T) {
	t.Parallel()

	t.Run("number argument", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "format", "-locale", "de", "price", "1234.5")
		require.NoError(t, err)
		require.Equal(t, "Summe: 1.234,50 €\n", out)
	})

	t.Run("string argument", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "format", "-locale", "de", "greeting", "Ana")
		require.NoError(t, err)
		require.Equal(t, "Hallo, Ana!\n", out)
	})

	t.Run("participants", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "format", "-as", "f3s:Ana", "-as", "t2", "shared")
		require.NoError(t, err)
		require.Equal(t, "Ana shared her notes with you.\n", out)
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "", "format", "-render", "markdown", "notice", "<i>Ana</i>")
		require.NoError(t, err)
		// Raw HTML in arguments is dropped.
		require.Equal(t, "Read the <strong>terms</strong>, Ana.\n", out)
	})

	t.Run("unknown render mode", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "format", "-render", "pdf", "notice")
		require.ErrorIs(t, err, cli.ErrUsage)
	})

	t.Run("unknown table", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "format", "-as", "x9", "shared")
		require.ErrorIs(t, err, cli.ErrUsage)
	})
}

func TestMain_Fmt(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "# comment\nb : x\\\n   y\na = \\ lead\n", "fmt")
		require.NoError(t, err)
		require.Equal(t, "b=xy\na=\\ lead\n", out)
	})

	t.Run("write back", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "messages.properties")
		require.NoError(t, os.WriteFile(path, []byte("key   value\n"), 0o644))

		out, err := run(t, "", "fmt", "-w", path)
		require.NoError(t, err)
		require.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "key=value\n", string(data))
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "bad = \\u12\n", "fmt")
		require.Error(t, err)
	})

	t.Run("-w without files", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "", "fmt", "-w")
		require.ErrorIs(t, err, cli.ErrUsage)
	})
}

func TestMain_Push(t *testing.T) {
	t.Parallel()

	dst := t.TempDir()
	var out bytes.Buffer
	err := cli.Main(context.Background(),
		[]string{"push", "-dir", dst, "-from", "testdata", "-log-level", "error"},
		cli.Streams{Out: &out, Err: io.Discard})
	require.NoError(t, err)
	require.Equal(t, "pushed 3 catalogs\n", out.String())

	_, err = os.Stat(filepath.Join(dst, "README.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	out.Reset()
	err = cli.Main(context.Background(),
		[]string{"get", "-dir", dst, "-locale", "de_CH", "farewell"},
		cli.Streams{Out: &out, Err: io.Discard})
	require.NoError(t, err)
	require.Equal(t, "Uf Wiederluege\n", out.String())

	_, err = run(t, "", "push")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestMain_MigrateWithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "", "migrate")
	require.ErrorIs(t, err, cli.ErrNoPostgres)
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	slices.Sort(lines)
	return lines
}

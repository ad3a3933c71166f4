package storage_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingua/pkg/storage"
)

// fakeDB keeps rows in memory and dispatches on the statement verb.
type fakeDB struct {
	rows map[string][]byte
	err  error
	mu   sync.Mutex
}

type fakeRow struct {
	err  error
	body []byte
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.body
	return nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.err != nil {
		return fakeRow{err: db.err}
	}
	body, ok := db.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{body: body}
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.err != nil {
		return pgconn.CommandTag{}, db.err
	}
	name := args[0].(string)
	switch {
	case strings.HasPrefix(sql, "INSERT"):
		db.rows[name] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.HasPrefix(sql, "DELETE"):
		delete(db.rows, name)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.CommandTag{}, errors.New("unexpected statement")
}

func TestPostgresStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save open delete", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{rows: map[string][]byte{}}
		s := storage.NewPostgres(db)

		require.NoError(t, s.Save(ctx, "messages_de.properties", strings.NewReader("a=Hallo\n")))
		require.Equal(t, "a=Hallo\n", readAll(t, s, "messages_de.properties"))

		require.NoError(t, s.Delete(ctx, "messages_de.properties"))
		_, err := s.Open(ctx, "messages_de.properties")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("database errors pass through", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		s := storage.NewPostgres(&fakeDB{err: boom})

		_, err := s.Open(ctx, "m.properties")
		require.ErrorIs(t, err, boom)

		require.ErrorIs(t, s.Save(ctx, "m.properties", strings.NewReader("")), storage.ErrSaveFailed)
		require.ErrorIs(t, s.Delete(ctx, "m.properties"), storage.ErrDeleteFailed)
	})

	t.Run("rejects invalid name", func(t *testing.T) {
		t.Parallel()
		s := storage.NewPostgres(&fakeDB{rows: map[string][]byte{}})
		_, err := s.Open(ctx, "")
		require.ErrorIs(t, err, storage.ErrInvalidName)
	})
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of a pgx pool or connection the Postgres store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStorage keeps resources in the catalogs table created by the
// pkg/db migrations.
type PostgresStorage struct {
	db      DB
	maxSize int64
}

// NewPostgres creates a store over db, typically a *pgxpool.Pool from
// pkg/db.Open.
func NewPostgres(db DB) *PostgresStorage {
	return &PostgresStorage{db: db, maxSize: DefaultMaxObjectSize}
}

const (
	selectCatalogSQL = `SELECT body FROM catalogs WHERE name = $1`
	upsertCatalogSQL = `INSERT INTO catalogs (name, body, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
	deleteCatalogSQL = `DELETE FROM catalogs WHERE name = $1`
)

// Open reads the named row.
func (s *PostgresStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	var body []byte
	if err := s.db.QueryRow(ctx, selectCatalogSQL, cleaned).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
		}
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

// Save inserts or replaces the named row.
func (s *PostgresStorage) Save(ctx context.Context, name string, r io.Reader) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return fmt.Errorf("%w: reading input: %v", ErrSaveFailed, err)
	}
	if int64(len(data)) > s.maxSize {
		return ErrTooLarge
	}

	if _, err := s.db.Exec(ctx, upsertCatalogSQL, cleaned, data); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// Delete removes the named row.
func (s *PostgresStorage) Delete(ctx context.Context, name string) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, deleteCatalogSQL, cleaned); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

var _ Storage = (*PostgresStorage)(nil)

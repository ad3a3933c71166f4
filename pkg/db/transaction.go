package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxStarter is implemented by *pgxpool.Pool and pgx.Conn.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn in a transaction, committing when it returns nil. An error
// or panic from fn rolls the transaction back; the panic is re-raised.
//
// A storage.PostgresStorage built on the tx writes several catalogs
// atomically.
func WithTx(ctx context.Context, db TxStarter, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

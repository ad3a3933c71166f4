// Package db connects to PostgreSQL for the catalog store.
//
//	pool, err := db.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//	store := storage.NewPostgres(pool)
//
// Migrate applies the embedded goose migrations that create the catalogs
// table. WithTx wraps a batch of writes in one transaction:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		s := storage.NewPostgres(tx)
//		return s.Save(ctx, "messages_de.properties", body)
//	})
package db

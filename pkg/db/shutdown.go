package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// Shutdown returns a shutdown hook that closes the PostgreSQL pool.
//
//	app.Run(ryob.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}

// ShutdownSQLite returns a shutdown hook that closes the SQLite handle.
func ShutdownSQLite(db *sqlx.DB) func(ctx context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

// MigratePostgres applies every pending migration in fsys to the pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	// The database/sql wrapper shares the pool's connections,
	// so it must not be closed here.
	return migrate(ctx, goose.DialectPostgres, stdlib.OpenDBFromPool(pool), fsys, log)
}

// MigrateSQLite applies every pending migration in fsys to db.
func MigrateSQLite(ctx context.Context, db *sqlx.DB, fsys fs.FS, log *slog.Logger) error {
	return migrate(ctx, goose.DialectSQLite3, db.DB, fsys, log)
}

func migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS, log *slog.Logger) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return errors.Join(ErrInitMigrator, err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Source == nil {
			continue
		}
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	log.InfoContext(ctx, "database schema up to date",
		slog.String("dialect", string(dialect)),
		slog.Int64("version", version),
	)
	return nil
}

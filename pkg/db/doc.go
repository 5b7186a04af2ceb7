// Package db opens, migrates, checks and closes the forum's database.
//
// Two engines are supported, chosen by the scheme of DATABASE_URL:
//
//   - postgres:// (or postgresql://) opens a [github.com/jackc/pgx/v5/pgxpool] pool
//     with startup retries.
//   - sqlite: or file: opens an embedded [modernc.org/sqlite] database through
//     [github.com/jmoiron/sqlx], with foreign keys enforced.
//
// Migrations are applied with the [github.com/pressly/goose/v3] Provider API
// from any fs.FS, so each caller passes its own embedded files and no goose
// globals are touched.
//
// # Configuration
//
//	DATABASE_URL                - connection URL (required)
//	DATABASE_MAX_OPEN_CONNS     - maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - pool health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - connection attempts at startup (default: 3)
//	DATABASE_RETRY_INTERVAL     - base retry interval (default: 5s)
//
// # Usage
//
//	var cfg db.Config
//	if err := env.Parse(&cfg); err != nil {
//		return err
//	}
//
//	switch cfg.Driver() {
//	case db.DriverPostgres:
//		pool, err := db.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		if err := db.MigratePostgres(ctx, pool, migrations.Postgres(), log); err != nil {
//			return err
//		}
//	case db.DriverSQLite:
//		conn, err := db.OpenSQLite(ctx, cfg)
//		...
//	}
//
// Healthcheck, SQLiteHealthcheck, Shutdown and ShutdownSQLite return
// functions suitable for readiness checks and shutdown hooks.
package db

package db

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// OpenSQLite opens an embedded SQLite database from a sqlite: or file: URL.
//
// Foreign keys are enforced on every connection. The handle is limited to one
// open connection: SQLite serializes writers anyway, and a single connection
// keeps an in-memory database consistent across queries.
func OpenSQLite(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.Driver() != DriverSQLite {
		return nil, ErrUnsupportedDriver
	}

	dsn, err := sqliteDSN(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return db, nil
}

// sqliteDSN converts "sqlite:path?x=y" into the driver's "file:path?x=y"
// form and appends the pragmas every connection needs.
func sqliteDSN(raw string) (string, error) {
	rest := strings.TrimPrefix(strings.TrimPrefix(raw, "sqlite:"), "file:")
	rest = strings.TrimPrefix(rest, "//")

	path, query, _ := strings.Cut(rest, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		return "", err
	}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Set("_time_format", "sqlite")

	return "file:" + path + "?" + params.Encode(), nil
}

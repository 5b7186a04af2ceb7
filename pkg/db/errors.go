package db

import "errors"

var (
	ErrUnsupportedDriver        = errors.New("db: DATABASE_URL must start with postgres://, sqlite: or file:")
	ErrFailedToParseDBConfig    = errors.New("db: invalid connection settings")
	ErrFailedToOpenDBConnection = errors.New("db: cannot connect")
	ErrHealthcheckFailed        = errors.New("db: ping failed")

	ErrInitMigrator    = errors.New("db: cannot initialize migrations")
	ErrApplyMigrations = errors.New("db: migrations failed")
)

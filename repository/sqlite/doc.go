// Package sqlite implements forum.Store on an embedded SQLite database
// through sqlx and the pure-Go modernc.org/sqlite driver.
//
// The handle is expected to come from db.OpenSQLite with the schema applied
// by db.MigrateSQLite. Timestamps are written in UTC so the text encoding
// SQLite stores orders the same way as time.
package sqlite

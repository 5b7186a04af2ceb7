// Package migrations embeds the goose SQL migrations for every supported dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the migrations for PostgreSQL.
func Postgres() fs.FS {
	return sub("postgres")
}

// SQLite returns the migrations for SQLite.
func SQLite() fs.FS {
	return sub("sqlite")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// dir is a compile-time constant matched by the embed pattern.
		panic(err)
	}
	return f
}

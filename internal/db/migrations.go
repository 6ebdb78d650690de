// Package db embeds the schema migrations applied at startup.
package db

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the migration files rooted at the directory goose
// reads from.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// Unreachable: the embed directive guarantees the directory.
		panic(err)
	}
	return sub
}

// Package migrations embeds the application's SQL migration files into the
// binary.
//
// This allows sqlift-migrate to bring a database up to date without needing
// the SQL files present on the filesystem - they're compiled into the
// executable. An on-disk directory configured via migrations.dir takes
// precedence over the embedded set.
package migrations

import (
	"embed"

	"github.com/kaqu/sqlift/migrate"
)

//go:embed *.sql
var migrationsFS embed.FS

// Load parses the embedded migration files into application order.
func Load() ([]migrate.Migration, error) {
	return migrate.LoadDir(migrationsFS, ".")
}

// Package migrate applies ordered schema migrations to a sqlite.Conn,
// tracked by a persisted integer version counter.
//
// This package manages:
//   - A schema_version table holding a single row (fixed key, integer version)
//   - Transactional application of pending migrations, oldest first
//   - Loading migrations from .sql files via fs.FS (go:embed or os.DirFS)
//
// The Nth migration in a list (1-indexed) corresponds to schema version N.
// The persisted version equals the count of migrations successfully applied
// and never decreases across the database file's lifetime.
//
// Atomicity:
//
// Each migration runs in its own transaction together with its version
// bump. If migration N fails:
//   - Migrations 1 to N-1 remain committed
//   - Every step of migration N is rolled back, including the version bump
//   - Migrations N+1 onwards are not attempted
//
// Re-running Apply after fixing the failure continues from N. Migrations
// already accounted for by the persisted version are never re-executed,
// even when their SQL would be idempotent.
//
// Usage:
//
//	migrations := []migrate.Migration{
//	    {Name: "create_users", Steps: []migrate.Step{
//	        {SQL: "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)"},
//	    }},
//	}
//
//	conn, err := migrate.Open("site.db", sqlite.DefaultConfig(), migrations)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
// Supplying a migration list shorter than what the database already records
// fails with ErrVersionAhead and performs no mutation: a regressed list is
// a configuration error, never auto-repaired.
package migrate

package migrate

import (
	"fmt"

	"github.com/kaqu/sqlift/sqlite"
)

// Schema-version bookkeeping statements. The table holds at most one row,
// keyed by a fixed singleton id.
const (
	createVersionTable sqlite.Statement = `
		CREATE TABLE IF NOT EXISTS schema_version (
			id      INTEGER PRIMARY KEY CHECK (id = 0),
			version INTEGER NOT NULL
		)`

	selectVersion sqlite.Statement = `SELECT version FROM schema_version WHERE id = 0`

	upsertVersion sqlite.Statement = `
		INSERT INTO schema_version (id, version) VALUES (0, ?)
		ON CONFLICT (id) DO UPDATE SET version = excluded.version`
)

// Step is one statement of a migration: SQL text plus its positional
// parameters.
type Step struct {
	// SQL is the statement to execute. Migrations must not produce rows.
	SQL sqlite.Statement

	// Params holds one value per placeholder, in placeholder order.
	// Nil for parameterless statements.
	Params []sqlite.Value
}

// Migration is an ordered sequence of one or more steps. Its position in
// the list passed to Apply defines the schema version it produces; the
// name is diagnostic only.
type Migration struct {
	Name  string
	Steps []Step
}

// label renders the migration's diagnostic identity for error messages.
func (m Migration) label(version int64) string {
	if m.Name == "" {
		return fmt.Sprintf("migration %d", version)
	}
	return fmt.Sprintf("migration %d (%s)", version, m.Name)
}

// Open opens the database at path and brings its schema up to date with
// migrations. This is the intended entry point for application code: no
// query runs against a database whose schema lags the binary.
//
// Parameters:
//   - path: Filesystem path, or sqlite.MemoryPath
//   - cfg: Connection configuration
//   - migrations: Full ordered migration list for this schema
//
// Returns:
//   - *sqlite.Conn: Connection with all migrations applied
//   - error: Connection or migration failure; the connection is closed
//     before returning on the failure path
func Open(path string, cfg sqlite.Config, migrations []Migration) (*sqlite.Conn, error) {
	conn, err := sqlite.Open(path, cfg)
	if err != nil {
		return nil, err
	}
	if err := Apply(conn, migrations); err != nil {
		conn.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, err
	}
	return conn, nil
}

// Apply brings the database up to date with migrations.
//
// It ensures the schema_version table exists, reads the persisted version
// (0 when the singleton row is absent), and applies every pending migration
// in ascending order. Each migration's steps and its version bump commit in
// one transaction; the first failure rolls that migration back entirely and
// aborts the run, leaving earlier migrations committed and later ones
// unattempted.
//
// A persisted version greater than len(migrations) fails with
// ErrVersionAhead before any mutation.
func Apply(conn *sqlite.Conn, migrations []Migration) error {
	if err := conn.Execute(createVersionTable); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	current, err := readVersion(conn)
	if err != nil {
		return err
	}

	total := int64(len(migrations))
	if current > total {
		return fmt.Errorf("%w: database at version %d, %d migrations supplied",
			ErrVersionAhead, current, total)
	}

	for i := current; i < total; i++ {
		m := migrations[i]
		version := i + 1
		err := conn.WithTransaction(func() error {
			for _, step := range m.Steps {
				if err := conn.Execute(step.SQL, step.Params...); err != nil {
					return err
				}
			}
			return conn.Execute(upsertVersion, sqlite.Integer(version))
		})
		if err != nil {
			return fmt.Errorf("applying %s: %w", m.label(version), err)
		}
	}

	return nil
}

// Version returns the persisted schema version: the count of migrations
// successfully applied to this database. It ensures the bookkeeping table
// exists, so it reports 0 on a fresh database rather than failing.
func Version(conn *sqlite.Conn) (int64, error) {
	if err := conn.Execute(createVersionTable); err != nil {
		return 0, fmt.Errorf("creating schema_version table: %w", err)
	}
	return readVersion(conn)
}

// readVersion reads the singleton version row, defaulting to 0 when the
// row is absent.
func readVersion(conn *sqlite.Conn) (int64, error) {
	rows, err := conn.Fetch(selectVersion)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	v, ok := rows[0].Integer("version")
	if !ok {
		return 0, fmt.Errorf("reading schema version: row has no integer version column")
	}
	return v, nil
}

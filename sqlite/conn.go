package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
)

// MemoryPath is the reserved location token for a temporary in-memory
// database, discarded when the connection closes.
const MemoryPath = ":memory:"

// Connection configuration constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600

	// msPerSecond converts seconds to milliseconds.
	msPerSecond = 1000
)

// Config contains connection configuration options.
type Config struct {
	// WALMode enables Write-Ahead Logging for better concurrent access.
	WALMode bool

	// BusyTimeout is the maximum time to wait for a database lock (seconds).
	// Prevents "database is locked" errors under contention. Zero disables
	// the timeout.
	BusyTimeout int

	// ForeignKeys enables foreign key constraint enforcement.
	ForeignKeys bool
}

// DefaultConfig returns the recommended connection configuration:
// WAL mode, a five second busy timeout, and foreign keys enforced.
func DefaultConfig() Config {
	return Config{
		WALMode:     true,
		BusyTimeout: 5,
		ForeignKeys: true,
	}
}

// Conn owns exactly one native engine handle for its entire lifetime.
//
// The handle is released exactly once: explicitly via Close, or as a last
// resort by a runtime cleanup when the Conn becomes unreachable. No two
// Conns ever share a handle.
//
// Thread Safety:
//   - A Conn is NOT safe for concurrent use. Callers needing shared access
//     must provide their own mutual exclusion.
type Conn struct {
	db      *sqlite3.Conn
	path    string
	cleanup runtime.Cleanup
}

// Open opens or creates the database at path, or an in-memory database when
// path is MemoryPath.
//
// It performs the following setup:
//  1. Creates the database directory if it doesn't exist
//  2. Opens the database file (creates if not present)
//  3. Applies busy timeout, WAL mode, and foreign key pragmas from cfg
//  4. Sets file permissions to 0600
//
// Any failure closes the partially opened handle before returning and is
// reported as ErrConnection carrying the engine's diagnostic text.
//
// Parameters:
//   - path: Filesystem path to the database file, or MemoryPath
//   - cfg: Connection configuration
//
// Returns:
//   - *Conn: Connected database handle
//   - error: ErrConnection if opening or configuration fails
func Open(path string, cfg Config) (*Conn, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %v", ErrConnection, err)
		}
	}

	db, err := sqlite3.Open(path)
	if err != nil {
		// The binding closes the partially opened handle itself.
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	c := &Conn{db: db, path: path}
	if err := c.configure(cfg); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, err
	}

	// Last-resort release if the caller never invokes Close. Close stops
	// this cleanup, keeping the release-exactly-once invariant.
	c.cleanup = runtime.AddCleanup(c, func(db *sqlite3.Conn) {
		db.Close() //nolint:errcheck // Nothing to report to; handle must not leak
	}, db)

	if path != MemoryPath {
		// File might not exist yet on an empty database; permissions are
		// applied by SQLite on first write in that case.
		_ = os.Chmod(path, filePermissions) //nolint:errcheck // Intentional: first run creates file later
	}

	return c, nil
}

// configure applies connection pragmas from cfg. Pragmas report their
// resulting value as a row, so they run through Fetch.
func (c *Conn) configure(cfg Config) error {
	pragmas := make([]Statement, 0, 4)
	if cfg.BusyTimeout > 0 {
		pragmas = append(pragmas,
			Statement(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout*msPerSecond)))
	}
	if cfg.WALMode {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	if cfg.ForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}

	for _, p := range pragmas {
		if _, err := c.Fetch(p); err != nil {
			return fmt.Errorf("%w: configuring connection: %v", ErrConnection, err)
		}
	}
	return nil
}

// Path returns the location the connection was opened with.
func (c *Conn) Path() string {
	return c.path
}

// Close releases the native handle. It is safe to call more than once;
// only the first call releases anything. Statements issued after Close
// fail with ErrConnection.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	c.cleanup.Stop()
	db := c.db
	c.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("%w: closing database: %v", ErrConnection, err)
	}
	return nil
}

// Execute runs a statement expected to produce no rows.
//
// The statement is prepared, its placeholder count verified against the
// parameter list, parameters bound at their 1-based positions, and the
// statement stepped once. A produced row means a row-producing statement
// was used via Execute, which is a caller contract violation reported as
// ErrExecution. The prepared statement is finalised on every exit path.
//
// Parameters:
//   - stmt: SQL text with positional placeholders
//   - params: One Value per placeholder, in placeholder order
//
// Returns:
//   - error: ErrStatement, ErrBinding, or ErrExecution on failure
func (c *Conn) Execute(stmt Statement, params ...Value) error {
	s, err := c.prepare(stmt, params)
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck // Finalisation failure cannot change the outcome

	hasRow, err := s.Step()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecution, err)
	}
	if hasRow {
		return fmt.Errorf("%w: statement produced rows, use Fetch", ErrExecution)
	}
	return nil
}

// Fetch runs a row-producing statement and materialises every result row,
// in production order. The preparation and binding path is identical to
// Execute; the statement is then stepped repeatedly until the engine
// reports completion. The prepared statement is finalised on every exit
// path.
//
// Parameters:
//   - stmt: SQL text with positional placeholders
//   - params: One Value per placeholder, in placeholder order
//
// Returns:
//   - []Row: Accumulated rows; nil when the statement produced none
//   - error: ErrStatement, ErrBinding, or ErrExecution on failure
func (c *Conn) Fetch(stmt Statement, params ...Value) ([]Row, error) {
	s, err := c.prepare(stmt, params)
	if err != nil {
		return nil, err
	}
	defer s.Close() //nolint:errcheck // Finalisation failure cannot change the outcome

	var rows []Row
	for {
		hasRow, err := s.Step()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		if !hasRow {
			break
		}
		row, err := materialiseRow(s)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAs runs Fetch and maps every row through mapRow, returning the
// mapped values in production order. The first mapping failure aborts and
// is returned unchanged.
func FetchAs[T any](c *Conn, stmt Statement, mapRow func(Row) (T, error), params ...Value) ([]T, error) {
	rows, err := c.Fetch(stmt, params...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := mapRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// prepare compiles stmt and binds params, classifying every failure per the
// package error taxonomy. The caller owns the returned statement and must
// finalise it.
//
// The parameter count is verified against the engine-reported placeholder
// count before any bind call is made. Binding aborts on the first engine
// rejection; remaining parameters stay unbound.
func (c *Conn) prepare(stmt Statement, params []Value) (*sqlite3.Stmt, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%w: connection is closed", ErrConnection)
	}

	s, err := c.db.Prepare(string(stmt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatement, err)
	}
	if s == nil {
		// The engine compiles empty or comment-only SQL to nothing.
		return nil, fmt.Errorf("%w: statement contains no SQL", ErrStatement)
	}

	if want := s.BindParameterCount(); want != len(params) {
		s.Close() //nolint:errcheck // Finalisation failure cannot change the outcome
		return nil, fmt.Errorf("%w: parameter count mismatch: statement has %d placeholders, got %d values",
			ErrBinding, want, len(params))
	}

	if len(params) > 0 {
		args := make([]interface{}, len(params))
		for i, p := range params {
			args[i] = p.engineArg()
		}
		if err := s.Bind(args...); err != nil {
			s.Close() //nolint:errcheck // Finalisation failure cannot change the outcome
			return nil, fmt.Errorf("%w: %v", ErrBinding, err)
		}
	}

	return s, nil
}

// materialiseRow decodes the current result row into a Row keyed by the
// engine-reported column names. Storage classes map onto value kinds
// directly; NULL columns are omitted from the row.
//
// A storage class outside the supported set is a contract violation between
// the engine and this binding, not a recoverable condition: continuing
// would silently misinterpret data, so it panics.
func materialiseRow(s *sqlite3.Stmt) (Row, error) {
	n := s.ColumnCount()
	row := make(Row, n)
	for i := 0; i < n; i++ {
		name := s.ColumnName(i)
		switch typ := s.ColumnType(i); typ {
		case sqlite3.INTEGER:
			v, _, err := s.ColumnInt64(i)
			if err != nil {
				return nil, fmt.Errorf("%w: reading column %q: %v", ErrExecution, name, err)
			}
			row[name] = Integer(v)
		case sqlite3.FLOAT:
			v, _, err := s.ColumnDouble(i)
			if err != nil {
				return nil, fmt.Errorf("%w: reading column %q: %v", ErrExecution, name, err)
			}
			row[name] = Real(v)
		case sqlite3.TEXT:
			v, _, err := s.ColumnText(i)
			if err != nil {
				return nil, fmt.Errorf("%w: reading column %q: %v", ErrExecution, name, err)
			}
			row[name] = Text(v)
		case sqlite3.BLOB:
			// The binding yields an empty slice when the engine exposes
			// no buffer for a zero-length blob.
			v, err := s.ColumnBlob(i)
			if err != nil {
				return nil, fmt.Errorf("%w: reading column %q: %v", ErrExecution, name, err)
			}
			row[name] = Blob(v)
		case sqlite3.NULL:
			// Absent from the row.
		default:
			panic(fmt.Sprintf("sqlite: engine reported unsupported storage class %d for column %q", typ, name))
		}
	}
	return row, nil
}

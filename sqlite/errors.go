package sqlite

import "errors"

// Sentinel errors for database operations.
//
// Every failure returned by this package wraps exactly one of these
// sentinels plus the engine's diagnostic text, and can be classified
// using errors.Is():
//
//	if errors.Is(err, sqlite.ErrBinding) {
//	    // parameter list did not match the statement
//	}
var (
	// ErrConnection indicates the database could not be opened or closed.
	ErrConnection = errors.New("sqlite: cannot open database")

	// ErrStatement indicates the SQL text could not be prepared
	// (syntax error or schema mismatch).
	ErrStatement = errors.New("sqlite: cannot prepare statement")

	// ErrBinding indicates a parameter count mismatch, or a bind call
	// rejected by the engine.
	ErrBinding = errors.New("sqlite: cannot bind parameters")

	// ErrExecution indicates a prepared statement's step sequence failed,
	// or a row was produced where none was expected.
	ErrExecution = errors.New("sqlite: statement execution failed")
)

// Package sqlite provides typed, injection-safe access to an embedded
// SQLite database.
//
// This package manages:
//   - Native handle lifecycle (opened once, released exactly once)
//   - Statement preparation, positional parameter binding, and stepping
//   - Row materialisation into a closed set of value kinds
//   - Transaction primitives and a scoped auto-rollback helper
//
// Security Considerations:
//   - All parameters travel through engine bind calls; caller-supplied
//     values are never interpolated into SQL text. The one internal
//     exception is connection setup, which formats the configured busy
//     timeout (an integer) into its PRAGMA, as pragmas cannot take bound
//     parameters
//   - Statement is a distinct type so that query text must be converted
//     deliberately; callers are expected to convert string literals only
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Concurrency:
//   - A Conn is not internally synchronised. Concurrent use of one Conn
//     from multiple goroutines without external mutual exclusion is
//     undefined; this layer adds no locking of its own.
//   - Operations issued sequentially on one Conn observe effects in issue
//     order. There are no suspension points and no background execution.
//
// Usage:
//
//	conn, err := sqlite.Open("site.db", sqlite.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	err = conn.Execute("INSERT INTO t (v) VALUES (?)", sqlite.Text("x"))
//	rows, err := conn.Fetch("SELECT v FROM t")
//
// Error Handling:
//
// Every failed call returns exactly one error value wrapping one of the
// package sentinels (ErrConnection, ErrStatement, ErrBinding, ErrExecution)
// together with the engine's diagnostic text. Nothing is logged, swallowed,
// or retried inside this package.
package sqlite

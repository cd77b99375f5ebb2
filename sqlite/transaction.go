package sqlite

// Transaction control statements. Issued through Execute so that failures
// are classified like any other statement.
const (
	beginStatement    Statement = "BEGIN"
	rollbackStatement Statement = "ROLLBACK"
	commitStatement   Statement = "COMMIT"
)

// Begin starts a deferred transaction. Transactions do not nest: beginning
// a second transaction while one is open is an engine-level error surfaced
// as ErrExecution.
func (c *Conn) Begin() error {
	return c.Execute(beginStatement)
}

// Rollback abandons the open transaction, discarding its writes.
func (c *Conn) Rollback() error {
	return c.Execute(rollbackStatement)
}

// Commit saves all changes made within the open transaction.
func (c *Conn) Commit() error {
	return c.Execute(commitStatement)
}

// WithTransaction runs fn inside a transaction on this connection.
//
// On success the transaction commits and any commit failure is returned.
// On failure a rollback is attempted and fn's original error is returned;
// the rollback's own error, if any, is deliberately discarded so the root
// cause is what the caller sees. WithTransaction never converts a failure
// into success.
//
// Parameters:
//   - fn: Unit of work; issue statements on the same Conn inside it
//
// Returns:
//   - error: Begin/commit failure, or fn's error unchanged
func (c *Conn) WithTransaction(fn func() error) error {
	if err := c.Begin(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		c.Rollback() //nolint:errcheck // Original failure takes precedence over rollback outcome
		return err
	}
	return c.Commit()
}

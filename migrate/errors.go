package migrate

import "errors"

// Domain errors for the migration engine.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, migrate.ErrVersionAhead) {
//	    // the supplied migration list has regressed
//	}
var (
	// ErrVersionAhead is returned when the persisted schema version exceeds
	// the number of supplied migrations. The database has seen migrations
	// the caller no longer knows about; treat it as a fatal configuration
	// error.
	ErrVersionAhead = errors.New("migrate: persisted schema version exceeds supplied migration list")

	// ErrNoStatements is returned when a migration file contains no
	// executable SQL.
	ErrNoStatements = errors.New("migrate: migration contains no statements")

	// ErrDuplicateSequence is returned when two migration files carry the
	// same numeric prefix, making their order ambiguous.
	ErrDuplicateSequence = errors.New("migrate: duplicate migration sequence number")
)

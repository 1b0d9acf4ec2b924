package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when the username does not match any user.
	ErrUserNotFound = errors.New("user was not found")

	// ErrItemNotFound is returned when a delete targets an item id that does
	// not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrUnknownUnlockMethod is returned when a wrap record is requested for
	// an unlock method the schema has no columns for.
	ErrUnknownUnlockMethod = errors.New("unknown unlock method")

	// ErrUnknownDriver is returned when the configured database/sql driver is
	// not one of the supported SQLite drivers.
	ErrUnknownDriver = errors.New("unknown sqlite driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrAcquiringConnection is returned when no connection can be taken from
	// the pool.
	ErrAcquiringConnection = errors.New("failed to acquire connection")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

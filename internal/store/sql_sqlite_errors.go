package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// ConstraintViolation names the SQLite constraint a failed statement broke.
type ConstraintViolation int

const (
	// NoViolation means the error is not a recognised constraint violation.
	NoViolation ConstraintViolation = iota

	// UniqueViolation is SQLITE_CONSTRAINT_UNIQUE (2067).
	UniqueViolation

	// ForeignKeyViolation is SQLITE_CONSTRAINT_FOREIGNKEY (787).
	ForeignKeyViolation

	// NotNullViolation is SQLITE_CONSTRAINT_NOTNULL (1299).
	NotNullViolation
)

// ClassifySQLiteError maps a driver error from either modernc.org/sqlite or
// mattn/go-sqlite3 to a [ConstraintViolation]. Errors from other sources
// yield [NoViolation].
func ClassifySQLiteError(err error) ConstraintViolation {
	if err == nil {
		return NoViolation
	}

	var modernErr *sqlite.Error
	if errors.As(err, &modernErr) {
		return classifyExtendedCode(modernErr.Code(), modernErr.Error())
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return classifyExtendedCode(int(cgoErr.ExtendedCode), cgoErr.Error())
	}

	return NoViolation
}

func classifyExtendedCode(code int, msg string) ConstraintViolation {
	switch code {
	case sqlitelib.SQLITE_CONSTRAINT_UNIQUE, sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlitelib.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	}

	// connections without extended result codes only report the primary
	// SQLITE_CONSTRAINT code; the message still names the constraint
	if code&0xff != sqlitelib.SQLITE_CONSTRAINT {
		return NoViolation
	}
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return UniqueViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return NotNullViolation
	}
	return NoViolation
}

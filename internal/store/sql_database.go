package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/migrations"
)

const enableForeignKeys = `PRAGMA foreign_keys = ON;`

// DBTX is the subset of database/sql shared by *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB)
}

// WithConn runs fn on a dedicated connection with foreign keys enforced. The
// connection is returned to the pool on every exit path.
func (db *DB) WithConn(ctx context.Context, fn func(ctx context.Context, conn DBTX) error) error {
	return db.withConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		return fn(ctx, conn)
	})
}

func (db *DB) withConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquiringConnection, err)
	}
	defer conn.Close()

	if _, err = conn.ExecContext(ctx, enableForeignKeys); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return fn(ctx, conn)
}

// WithTx runs fn inside a transaction on a dedicated connection. The
// transaction is committed when fn returns nil and rolled back otherwise,
// including when fn panics.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return db.withConn(ctx, func(ctx context.Context, conn *sql.Conn) (err error) {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}

		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if commitErr := tx.Commit(); commitErr != nil {
				err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
			}
		}()

		return fn(ctx, tx)
	})
}

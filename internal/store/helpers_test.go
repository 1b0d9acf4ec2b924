package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pin-vault/internal/config"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &DB{DB: db, logger: logger.Nop()}, mock
}

func expectForeignKeys(mock sqlmock.Sqlmock) {
	mock.ExpectExec("PRAGMA foreign_keys = ON").WillReturnResult(sqlmock.NewResult(0, 0))
}

// newSQLiteStorages opens a migrated in-memory database on the pure Go driver.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: ":memory:", Driver: config.DriverModernSQLite}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	s := newStorages(db, logger.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(username string) models.User {
	return models.User{
		Username:    username,
		PasswordKey: models.WrappedKey{Blob: []byte("passw-blob-" + username), Salt: []byte("passw-salt")},
		PinKey:      models.WrappedKey{Blob: []byte("pin-blob-" + username), Salt: []byte("pin-salt")},
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

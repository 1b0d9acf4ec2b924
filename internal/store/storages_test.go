// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pin-vault/internal/config"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/models"
)

// ── connection ────────────────────────────────────────────────────────────────

func TestNewConnectSQLite_UnknownDriver(t *testing.T) {
	_, err := NewConnectSQLite(context.Background(), config.DB{DSN: ":memory:", Driver: "pgx"}, logger.Nop())
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNewStorages_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault.db")

	s, err := NewStorages(context.Background(), config.DB{DSN: path, Driver: config.DriverModernSQLite}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = s.UserRepository.CreateUser(context.Background(), testUser("alice"))
	require.NoError(t, err)
}

func TestNewStorages_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	cfg := config.DB{DSN: filepath.Join(t.TempDir(), "vault.db"), Driver: config.DriverModernSQLite}

	first, err := NewStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	_, err = first.UserRepository.CreateUser(ctx, testUser("alice"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	users, err := second.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestStorages_CloseNil(t *testing.T) {
	var s *Storages
	assert.NoError(t, s.Close())
}

// ── users ─────────────────────────────────────────────────────────────────────

func TestUserRepository_SQLite_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	want := testUser("alice")
	want.Avatar = []byte{1, 2, 3}

	id, err := s.UserRepository.CreateUser(ctx, want)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	want.ID = id
	assert.Equal(t, want, got)
}

func TestUserRepository_SQLite_AvatarStoredAsNull(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	_, err := s.UserRepository.CreateUser(ctx, testUser("alice"))
	require.NoError(t, err)

	var isNull bool
	require.NoError(t, s.db.QueryRow(`SELECT image IS NULL FROM users WHERE username = 'alice'`).Scan(&isNull))
	assert.True(t, isNull)

	got, err := s.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got.Avatar)
}

func TestUserRepository_SQLite_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	_, err := s.UserRepository.CreateUser(ctx, testUser("alice"))
	require.NoError(t, err)

	_, err = s.UserRepository.CreateUser(ctx, testUser("alice"))
	require.ErrorIs(t, err, ErrUsernameAlreadyExists)

	// usernames are case-sensitive
	_, err = s.UserRepository.CreateUser(ctx, testUser("Alice"))
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, s.db.DB, "users"))
}

func TestUserRepository_SQLite_GetWrappedKey(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)
	user := testUser("alice")

	_, err := s.UserRepository.CreateUser(ctx, user)
	require.NoError(t, err)

	passw, err := s.UserRepository.GetWrappedKey(ctx, "alice", models.UnlockByPassword)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordKey, passw)

	pin, err := s.UserRepository.GetWrappedKey(ctx, "alice", models.UnlockByPin)
	require.NoError(t, err)
	assert.Equal(t, user.PinKey, pin)

	_, err = s.UserRepository.GetWrappedKey(ctx, "bob", models.UnlockByPin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_SQLite_ListUsers(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	users, err := s.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	for _, name := range []string{"carol", "alice", "bob"} {
		_, err = s.UserRepository.CreateUser(ctx, testUser(name))
		require.NoError(t, err)
	}

	users, err = s.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)
	assert.Equal(t, "bob", users[2].Username)
}

func TestUserRepository_SQLite_DeleteUserRemovesItems(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	for _, name := range []string{"alice", "bob"} {
		_, err := s.UserRepository.CreateUser(ctx, testUser(name))
		require.NoError(t, err)
	}
	_, err := s.ItemRepository.SaveItems(ctx, "alice", []byte("a1"), []byte("a2"))
	require.NoError(t, err)
	_, err = s.ItemRepository.SaveItems(ctx, "bob", []byte("b1"))
	require.NoError(t, err)

	require.NoError(t, s.UserRepository.DeleteUser(ctx, "alice"))

	_, err = s.UserRepository.FindUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.ItemRepository.GetItems(ctx, "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, 1, countRows(t, s.db.DB, "data"))

	bobItems, err := s.ItemRepository.GetItems(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobItems, 1)

	assert.ErrorIs(t, s.UserRepository.DeleteUser(ctx, "alice"), ErrUserNotFound)
}

// ── items ─────────────────────────────────────────────────────────────────────

func TestItemRepository_SQLite_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	userID, err := s.UserRepository.CreateUser(ctx, testUser("alice"))
	require.NoError(t, err)

	items, err := s.ItemRepository.GetItems(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)

	ids, err := s.ItemRepository.SaveItems(ctx, "alice", []byte("first"), []byte("second"))
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])

	items, err = s.ItemRepository.GetItems(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.EncryptedItem{ID: ids[0], UserID: userID, Ciphertext: []byte("first")}, items[0])
	assert.Equal(t, models.EncryptedItem{ID: ids[1], UserID: userID, Ciphertext: []byte("second")}, items[1])
}

func TestItemRepository_SQLite_SaveForUnknownUser(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	_, err := s.ItemRepository.SaveItems(ctx, "ghost", []byte("x"))
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, countRows(t, s.db.DB, "data"))
}

func TestItemRepository_SQLite_DeleteItem(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	_, err := s.UserRepository.CreateUser(ctx, testUser("alice"))
	require.NoError(t, err)
	ids, err := s.ItemRepository.SaveItems(ctx, "alice", []byte("a"), []byte("b"))
	require.NoError(t, err)

	require.NoError(t, s.ItemRepository.DeleteItem(ctx, ids[0]))
	assert.ErrorIs(t, s.ItemRepository.DeleteItem(ctx, ids[0]), ErrItemNotFound)

	items, err := s.ItemRepository.GetItems(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ids[1], items[0].ID)
}

// ── error classification ──────────────────────────────────────────────────────

func TestWithConn_EnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	err := s.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		_, err := conn.ExecContext(ctx, saveItem, 999, []byte("orphan"))
		return err
	})
	require.Error(t, err)
	assert.Equal(t, ForeignKeyViolation, ClassifySQLiteError(err))
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	assert.Panics(t, func() {
		_ = s.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, createUser, "alice", nil, []byte{1}, []byte{1}, []byte{1}, []byte{1})
			require.NoError(t, err)
			panic("boom")
		})
	})

	assert.Equal(t, 0, countRows(t, s.db.DB, "users"))
}

func TestClassifySQLiteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ConstraintViolation
	}{
		{name: "nil", err: nil, want: NoViolation},
		{name: "plain error", err: errors.New("boom"), want: NoViolation},
		{
			name: "cgo unique",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want: UniqueViolation,
		},
		{
			name: "cgo foreign key",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey},
			want: ForeignKeyViolation,
		},
		{
			name: "cgo not null wrapped",
			err:  errors.Join(errors.New("insert"), sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}),
			want: NotNullViolation,
		},
		{
			name: "cgo busy",
			err:  sqlite3.Error{Code: sqlite3.ErrBusy},
			want: NoViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySQLiteError(tt.err))
		})
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pin-vault/internal/config"
	"github.com/MKhiriev/go-pin-vault/internal/crypto"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/internal/store"
	"github.com/MKhiriev/go-pin-vault/models"
)

// newSQLiteVault wires the full service stack over an in-memory database.
func newSQLiteVault(t *testing.T) VaultService {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.DB{DSN: ":memory:", Driver: config.DriverModernSQLite}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return NewServices(storages, logger.Nop()).VaultService
}

func registerAlice(t *testing.T, svc VaultService) {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), models.Registration{
		Username: "alice",
		Password: "Abcdef1!",
		Pin:      "123456",
	}))
}

func TestVault_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)

	registerAlice(t, svc)

	key, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	require.Len(t, key, crypto.KeySize)

	item := models.Item{Description: "mail", Username: "a@b.com", Secret: "Xx1!aaaa"}
	ids, err := svc.WriteItems(ctx, "alice", key, item)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	items, err := svc.ReadItems(ctx, "alice", key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.StoredItem{ID: ids[0], Item: item}, items[0])

	svc.Logout()

	_, err = svc.UnlockWithPin(ctx, "alice", "000000")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestVault_BothFactorsYieldSameKey(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	byPin, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	svc.Logout()

	byPassword, err := svc.UnlockWithPassword(ctx, "alice", "Abcdef1!")
	require.NoError(t, err)
	svc.Logout()

	assert.Equal(t, byPin, byPassword)

	// items written under one factor are readable under the other
	_, err = svc.WriteItems(ctx, "alice", byPin, models.Item{Description: "bank"})
	require.NoError(t, err)
	items, err := svc.ReadItems(ctx, "alice", byPassword)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bank", items[0].Description)
}

func TestVault_DuplicateRegistration(t *testing.T) {
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	err := svc.Register(context.Background(), models.Registration{Username: "alice", Password: "Zyxwvu9$", Pin: "654321"})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// the original credentials still work
	_, err = svc.UnlockWithPin(context.Background(), "alice", "123456")
	assert.NoError(t, err)
}

func TestVault_WrongFactorsAndUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	_, err := svc.UnlockWithPassword(ctx, "alice", "Wrong1!!")
	assert.ErrorIs(t, err, ErrAuthentication)

	// the password is not accepted as a PIN and the other way round
	_, err = svc.UnlockWithPin(ctx, "alice", "Abcdef1!")
	assert.ErrorIs(t, err, ErrAuthentication)
	_, err = svc.UnlockWithPassword(ctx, "alice", "123456")
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.UnlockWithPin(ctx, "bob", "123456")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestVault_ReadWithWrongKeyFails(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	key, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	_, err = svc.WriteItems(ctx, "alice", key, models.Item{Description: "mail", Secret: "s"})
	require.NoError(t, err)

	wrong := key.Clone()
	wrong[0] ^= 0xff

	_, err = svc.ReadItems(ctx, "alice", wrong)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestVault_DeleteUserRemovesItems(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	key, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	_, err = svc.WriteItems(ctx, "alice", key, models.Item{Description: "a"}, models.Item{Description: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyPassword(ctx, "alice", "Abcdef1!"))
	require.NoError(t, svc.DeleteUser(ctx, "alice"))

	_, ok := svc.CurrentSession()
	assert.False(t, ok, "deleting the session owner closes the session")

	_, err = svc.ReadItems(ctx, "alice", key)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// the name is free again and the new account starts empty
	registerAlice(t, svc)
	newKey, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	assert.NotEqual(t, key, newKey)

	items, err := svc.ReadItems(ctx, "alice", newKey)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestVault_ItemsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)
	require.NoError(t, svc.Register(ctx, models.Registration{Username: "bob", Password: "Qwerty1#", Pin: "987654"}))

	aliceKey, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	_, err = svc.WriteItems(ctx, "alice", aliceKey, models.Item{Description: "alice-only"})
	require.NoError(t, err)
	svc.Logout()

	bobKey, err := svc.UnlockWithPin(ctx, "bob", "987654")
	require.NoError(t, err)
	items, err := svc.ReadItems(ctx, "bob", bobKey)
	require.NoError(t, err)
	assert.Empty(t, items)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestVault_DeleteItem(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	key, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)
	ids, err := svc.WriteItems(ctx, "alice", key, models.Item{Description: "a"}, models.Item{Description: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, ids[0]))
	assert.ErrorIs(t, svc.DeleteItem(ctx, ids[0]), ErrItemNotFound)

	items, err := svc.ReadItems(ctx, "alice", key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Description)
}

func TestVault_WriteItemsKeepsTextExact(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)
	registerAlice(t, svc)

	key, err := svc.UnlockWithPin(ctx, "alice", "123456")
	require.NoError(t, err)

	_, err = svc.WriteItems(ctx, "alice", key, models.Item{Description: "mail", Secret: "pa\xffss\xfe"})
	require.ErrorIs(t, err, ErrValidation)

	items, err := svc.ReadItems(ctx, "alice", key)
	require.NoError(t, err)
	assert.Empty(t, items, "a rejected batch stores nothing")

	item := models.Item{Description: "почта", Username: "ünïcode", Secret: "пароль✓\"\\"}
	_, err = svc.WriteItems(ctx, "alice", key, item)
	require.NoError(t, err)

	items, err = svc.ReadItems(ctx, "alice", key)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item, items[0].Item)
}

func TestVault_Avatar(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteVault(t)

	require.NoError(t, svc.Register(ctx, models.Registration{
		Username: "alice", Password: "Abcdef1!", Pin: "123456", Avatar: []byte{0x89, 'P', 'N', 'G'},
	}))
	require.NoError(t, svc.Register(ctx, models.Registration{Username: "bob", Password: "Qwerty1#", Pin: "987654"}))

	avatar, err := svc.Avatar(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, avatar)

	avatar, err = svc.Avatar(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, avatar)

	_, err = svc.Avatar(ctx, "carol")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

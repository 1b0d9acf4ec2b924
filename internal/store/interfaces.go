// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-pin-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists vault owners and their wrapped master keys.
type UserRepository interface {
	// CreateUser inserts the user row with both wrap records in one
	// statement and returns the assigned id.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// FindUserByUsername loads the full user row.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// GetWrappedKey loads only the wrap record selected by method.
	GetWrappedKey(ctx context.Context, username string, method models.UnlockMethod) (models.WrappedKey, error)
	// ListUsers returns every user ordered by id, without key material.
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	// DeleteUser removes the user and all of its items in one transaction.
	DeleteUser(ctx context.Context, username string) error
}

// ItemRepository persists encrypted vault items.
type ItemRepository interface {
	// SaveItems inserts all blobs for the user in one transaction and returns
	// the new ids in input order.
	SaveItems(ctx context.Context, username string, blobs ...[]byte) ([]int64, error)
	// GetItems returns every item of the user ordered by id.
	GetItems(ctx context.Context, username string) ([]models.EncryptedItem, error)
	// DeleteItem removes exactly one item.
	DeleteItem(ctx context.Context, itemID int64) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pin-vault/internal/store"
)

// mapStoreError translates a repository error into a service business error.
// Unknown errors become ErrStorage with the cause kept for logs.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return ErrDuplicateUser
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrItemNotFound):
		return ErrItemNotFound
	}

	return fmt.Errorf("%w: %w", ErrStorage, err)
}

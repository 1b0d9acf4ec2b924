// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is a registered vault owner together with the two wrap records that
// protect its master key. The master key itself is never part of this type.
type User struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"-"`

	// Username is unique across the vault, case-sensitive and immutable.
	Username string `json:"username"`

	// Avatar is an optional opaque image blob. It is not security-relevant.
	Avatar []byte `json:"-"`

	// PasswordKey is the master key wrapped under a key derived from the
	// user's password.
	PasswordKey WrappedKey `json:"-"`

	// PinKey is the master key wrapped under a key derived from the user's PIN.
	PinKey WrappedKey `json:"-"`
}

// WrappedKey returns the wrap record selected by method.
func (u User) WrappedKey(method UnlockMethod) WrappedKey {
	if method == UnlockByPin {
		return u.PinKey
	}
	return u.PasswordKey
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserSummary is the read-only projection returned when enumerating users.
type UserSummary struct {
	Username string
	Avatar   []byte
}

// Registration carries the input of a registration request. Password and Pin
// are plaintext and must not outlive the request.
type Registration struct {
	Username string
	Password string
	Pin      string
	Avatar   []byte
}

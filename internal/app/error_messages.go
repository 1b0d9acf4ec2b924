// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the vault
// command-line interface.
//
// All Msg* constants are human-readable message strings printed to the user
// when an operation fails. Keeping them in one place ensures consistent
// wording across commands.
package app

const (
	// MsgInvalidDataProvided is shown when a username, password, PIN or item
	// identifier fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is shown when unlocking fails. Unknown users and
	// wrong secrets share this message.
	MsgInvalidCredentials = "invalid username or secret"

	// MsgUserAlreadyExists is shown when a registration attempt is rejected
	// because the requested username is already in use.
	MsgUserAlreadyExists = "user already exists"

	// MsgUserNotFound is shown when an operation targets a user that does not
	// exist.
	MsgUserNotFound = "user not found"

	// MsgItemNotFound is shown when a delete targets an item that does not
	// exist for the given user.
	MsgItemNotFound = "item not found"

	// MsgSessionActive is shown when an unlock is attempted while another
	// session is still open.
	MsgSessionActive = "another session is active, log out first"

	// MsgStorageFailure is shown when the database cannot be read or written.
	MsgStorageFailure = "storage failure"

	// MsgInternalError is shown for unexpected failures the user cannot
	// resolve.
	MsgInternalError = "internal error"

	// MsgSecretsDoNotMatch is shown when the repeated password or PIN differs
	// from the first entry.
	MsgSecretsDoNotMatch = "entries do not match"

	// MsgGenerationFailed is shown when no password satisfies the selected
	// character classes and length.
	MsgGenerationFailed = "cannot generate a password with the selected options"
)

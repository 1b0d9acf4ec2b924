// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// UnlockMethod selects one of the two independent wrap records of a user.
type UnlockMethod int

const (
	// UnlockByPassword selects the password wrap record.
	UnlockByPassword UnlockMethod = iota + 1
	// UnlockByPin selects the PIN wrap record.
	UnlockByPin
)

// String implements fmt.Stringer.
func (m UnlockMethod) String() string {
	switch m {
	case UnlockByPassword:
		return "password"
	case UnlockByPin:
		return "pin"
	default:
		return fmt.Sprintf("UnlockMethod(%d)", int(m))
	}
}

// Valid reports whether m is one of the known unlock methods.
func (m UnlockMethod) Valid() bool {
	return m == UnlockByPassword || m == UnlockByPin
}

// WrappedKey is a master key encrypted under a derived key, plus the salt
// that was used for the derivation. Blob has the layout IV || ciphertext.
type WrappedKey struct {
	Blob []byte
	Salt []byte
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// ErrCrypto is the umbrella error for every decryption or unwrap failure.
// Callers outside this package should only ever match on ErrCrypto; the more
// specific errors below are wrapped by it and exist for diagnostics.
var ErrCrypto = errors.New("crypto error")

var (
	// ErrInvalidKeySize is returned when a key is not 32 bytes long.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCiphertextTooShort is returned when a blob cannot even hold an IV
	// and one cipher block.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrCiphertextNotBlockAligned is returned when the ciphertext after the
	// IV is not a multiple of the AES block size.
	ErrCiphertextNotBlockAligned = errors.New("ciphertext is not a multiple of the block size")

	// ErrInvalidPadding is returned when PKCS#7 unpadding fails.
	ErrInvalidPadding = errors.New("invalid padding")

	// ErrInvalidMasterKey is returned when an unwrapped blob does not have
	// the length of a master key.
	ErrInvalidMasterKey = errors.New("unwrapped master key has unexpected length")
)

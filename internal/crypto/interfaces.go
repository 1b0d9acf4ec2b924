// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/go-pin-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns all vault cryptography. It knows nothing about the
// database, the session or the users: it only derives, generates, wraps and
// unwraps keys and encrypts opaque payloads.
//
// Registration and unlock work as follows:
//
//	MK            = GenerateMasterKey()                        (once per user)
//	salt, blob    = WrapMasterKey(MK, password)                (password path)
//	salt', blob'  = WrapMasterKey(MK, pin)                     (PIN path)
//	MK            = UnwrapMasterKey({blob, salt}, secret)      (either path)
//	item blob     = Encrypt(json(item), MK)
type KeyChainService interface {
	// GenerateSalt returns 16 fresh random bytes. A salt is not secret; it
	// is stored next to the wrap record it was used for.
	GenerateSalt() ([]byte, error)

	// GenerateMasterKey returns 32 fresh random bytes from the OS CSPRNG.
	// It is called exactly once per user, at registration.
	GenerateMasterKey() ([]byte, error)

	// DeriveKey turns a human secret and a salt into a 32-byte key with
	// PBKDF2-HMAC-SHA256. The same (secret, salt) always yields the same key.
	DeriveKey(secret string, salt []byte) []byte

	// Encrypt pads plaintext with PKCS#7 and encrypts it with AES-256-CBC
	// under a fresh random IV. The result is IV || ciphertext.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt reverses Encrypt. It fails with ErrCrypto when blob is
	// malformed or the padding is invalid, which is how a wrong key shows up.
	Decrypt(blob, key []byte) ([]byte, error)

	// WrapMasterKey encrypts masterKey under a key derived from secret and a
	// freshly generated salt.
	WrapMasterKey(masterKey []byte, secret string) (models.WrappedKey, error)

	// UnwrapMasterKey recovers the master key from a wrap record. Every
	// failure is reported as ErrCrypto.
	UnwrapMasterKey(wrapped models.WrappedKey, secret string) ([]byte, error)
}

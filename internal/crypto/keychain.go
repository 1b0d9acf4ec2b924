// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-pin-vault/models"
)

const (
	// KeySize is the length of master keys and derived keys (AES-256).
	KeySize = 32

	// SaltSize is the length of the per-wrap random salt.
	SaltSize = 16

	// IVSize is the length of the CBC initialisation vector prepended to
	// every blob. It equals the AES block size.
	IVSize = aes.BlockSize

	// DefaultIterations is the PBKDF2 iteration count used for every wrap.
	DefaultIterations = 100_000
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	iterations int
	keyLen     int
	random     io.Reader
}

// NewKeyChainService constructs a [KeyChainService] that derives keys with
// PBKDF2-HMAC-SHA256:
//   - iterations: 100 000
//   - key length: 32 bytes (256 bits)
//
// Randomness is read from crypto/rand.
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		iterations: DefaultIterations,
		keyLen:     KeySize,
		random:     rand.Reader,
	}
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	return k.randomBytes(SaltSize)
}

// GenerateMasterKey implements [KeyChainService].
func (k *keyChainService) GenerateMasterKey() ([]byte, error) {
	return k.randomBytes(KeySize)
}

// DeriveKey implements [KeyChainService]. The derivation is deliberately
// slow; results are not cached.
func (k *keyChainService) DeriveKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, k.iterations, k.keyLen, sha256.New)
}

// Encrypt implements [KeyChainService]. A new IV is drawn for every call, so
// encrypting the same plaintext twice under the same key yields different
// blobs.
func (k *keyChainService) Encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	iv, err := k.randomBytes(IVSize)
	if err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)

	// blob = iv || ciphertext
	blob := make([]byte, IVSize+len(padded))
	copy(blob, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(blob[IVSize:], padded)

	return blob, nil
}

// Decrypt implements [KeyChainService]. The padding check is the only
// integrity signal: a wrong key is detected when the unpadding fails.
func (k *keyChainService) Decrypt(blob, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < IVSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, ErrCiphertextTooShort)
	}

	iv, ciphertext := blob[:IVSize], blob[IVSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, ErrCiphertextNotBlockAligned)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	return plaintext, nil
}

// WrapMasterKey implements [KeyChainService].
func (k *keyChainService) WrapMasterKey(masterKey []byte, secret string) (models.WrappedKey, error) {
	salt, err := k.GenerateSalt()
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("generate salt: %w", err)
	}

	derived := k.DeriveKey(secret, salt)
	defer zero(derived)

	blob, err := k.Encrypt(masterKey, derived)
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("encrypt master key: %w", err)
	}

	return models.WrappedKey{Blob: blob, Salt: salt}, nil
}

// UnwrapMasterKey implements [KeyChainService]. A successfully unpadded blob
// of the wrong length is rejected too: with a wrong key the padding check
// passes by chance far more often than it yields exactly KeySize bytes.
func (k *keyChainService) UnwrapMasterKey(wrapped models.WrappedKey, secret string) ([]byte, error) {
	derived := k.DeriveKey(secret, wrapped.Salt)
	defer zero(derived)

	masterKey, err := k.Decrypt(wrapped.Blob, derived)
	if err != nil {
		return nil, err
	}

	if len(masterKey) != KeySize {
		zero(masterKey)
		return nil, fmt.Errorf("%w: %w", ErrCrypto, ErrInvalidMasterKey)
	}

	return masterKey, nil
}

func (k *keyChainService) randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(k.random, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %w: %d", ErrCrypto, ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %w", ErrCrypto, err)
	}
	return block, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

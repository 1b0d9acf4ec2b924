// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Item is a single stored credential in plaintext form. Field order is fixed,
// so the JSON encoding of an Item is deterministic.
type Item struct {
	// Description is a free-form label, usually the site name.
	Description string `json:"description"`

	// Username is the login used on the site. It is unrelated to the vault
	// user that owns the item.
	Username string `json:"username"`

	// Secret is the site password.
	Secret string `json:"secret"`
}

// StoredItem is a decrypted item together with its store identifier.
type StoredItem struct {
	ID int64
	Item
}

// EncryptedItem is the at-rest representation of an item: the envelope
// ciphertext of its JSON encoding.
type EncryptedItem struct {
	ID         int64
	UserID     int64
	Ciphertext []byte
}

// TableName returns the name of the database table
// associated with the EncryptedItem model.
func (EncryptedItem) TableName() string {
	return "data"
}

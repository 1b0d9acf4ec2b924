// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault credentials before they reach the key
// derivation or the store.
//
// Rules:
//   - username: more than one character, ASCII letters, digits and !#@$%_
//   - password: at least 8 characters with a digit, a symbol from !#@$%_,
//     a lower-case and an upper-case letter, and nothing else
//   - PIN: at least 6 characters, digits only
//
// A [Validator] accepts a whole models.Registration or a single value
// together with the name of the field it represents. Field names restrict
// registration checks to the named fields.
package validators

import "context"

// Validator validates obj. When fields are given only those fields are
// checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

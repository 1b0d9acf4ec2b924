// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[MASTER KEY]"

// MasterKey holds an unwrapped 256-bit master key in process memory.
// Formatting and marshalling helpers redact the value, so a MasterKey that
// ends up in a log line or a JSON document never reveals its bytes.
type MasterKey []byte

// String redacts the key for fmt.Print* convenience.
func (k MasterKey) String() string { return redacted }

// Format implements fmt.Formatter so that every verb is redacted.
func (k MasterKey) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON implements json.Marshaler.
func (k MasterKey) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText implements encoding.TextMarshaler.
func (k MasterKey) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Clone returns an independent copy of the key.
func (k MasterKey) Clone() MasterKey {
	if k == nil {
		return nil
	}
	out := make(MasterKey, len(k))
	copy(out, k)
	return out
}

// Zero overwrites the key bytes in place.
func (k MasterKey) Zero() {
	for i := range k {
		k[i] = 0
	}
}

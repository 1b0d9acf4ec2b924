// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-pin-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUsername targets the account name.
	FieldUsername = "username"

	// FieldPassword targets the primary secret.
	FieldPassword = "password"

	// FieldPin targets the numeric secondary secret.
	FieldPin = "pin"
)

const (
	// SpecialChars is the only set of non-alphanumeric characters accepted in
	// usernames and passwords.
	SpecialChars = "!#@$%_"

	minUsernameLength = 2
	minPasswordLength = 8
	minPinLength      = 6
)

// CredentialsValidator implements [Validator] for registration input and for
// single credential strings.
//
// Accepted values:
//   - models.Registration / *models.Registration: all fields are checked
//     unless a subset is given.
//   - string: exactly one field name must be given; the string is checked
//     against that field's rule.
type CredentialsValidator struct{}

// NewCredentialsValidator returns a [Validator] for user credentials.
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate dispatches validation by the dynamic type of obj.
func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Registration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.Registration:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateRegistration(ctx, *value, fields...)
	case string:
		if len(fields) != 1 {
			return ErrUnknownField
		}
		return validateField(fields[0], value)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateRegistration(_ context.Context, reg models.Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldPin}
	}

	for _, f := range fields {
		var value string
		switch f {
		case FieldUsername:
			value = reg.Username
		case FieldPassword:
			value = reg.Password
		case FieldPin:
			value = reg.Pin
		default:
			return ErrUnknownField
		}

		if err := validateField(f, value); err != nil {
			return err
		}
	}

	return nil
}

func validateField(field, value string) error {
	switch field {
	case FieldUsername:
		if !IsValidUsername(value) {
			return ErrInvalidUsername
		}
	case FieldPassword:
		if !IsValidPassword(value) {
			return ErrInvalidPassword
		}
	case FieldPin:
		if !IsValidPin(value) {
			return ErrInvalidPin
		}
	default:
		return ErrUnknownField
	}
	return nil
}

// IsValidUsername reports whether s is longer than one character and made of
// ASCII letters, digits and [SpecialChars] only.
func IsValidUsername(s string) bool {
	if utf8.RuneCountInString(s) < minUsernameLength {
		return false
	}
	for _, r := range s {
		if !isLetter(r) && !isDigit(r) && !isSpecial(r) {
			return false
		}
	}
	return true
}

// IsValidPassword reports whether s has at least eight characters, contains
// a digit, a special character, a lower- and an upper-case letter, and
// nothing outside those classes.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < minPasswordLength {
		return false
	}

	var hasDigit, hasSpecial, hasLower, hasUpper bool
	for _, r := range s {
		switch {
		case isDigit(r):
			hasDigit = true
		case isSpecial(r):
			hasSpecial = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		default:
			return false
		}
	}
	return hasDigit && hasSpecial && hasLower && hasUpper
}

// IsValidPin reports whether s has at least six characters, all digits.
func IsValidPin(s string) bool {
	if len(s) < minPinLength {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool  { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool   { return r >= '0' && r <= '9' }
func isSpecial(r rune) bool { return strings.ContainsRune(SpecialChars, r) }

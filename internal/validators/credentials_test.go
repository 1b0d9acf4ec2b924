// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pin-vault/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegistration() models.Registration {
	return models.Registration{
		Username: "alice",
		Password: "Passw0rd!",
		Pin:      "123456",
	}
}

// ---------------------------------------------------------------------------
// TestNewCredentialsValidator
// ---------------------------------------------------------------------------

func TestNewCredentialsValidator(t *testing.T) {
	v := NewCredentialsValidator()
	require.NotNil(t, v)
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()
	reg := validRegistration()

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
	}{
		{name: "registration value", obj: reg},
		{name: "registration pointer", obj: &reg},
		{name: "nil registration pointer", obj: (*models.Registration)(nil), wantErr: ErrUnsupportedType},
		{name: "string with field", obj: "123456", fields: []string{FieldPin}},
		{name: "string without field", obj: "123456", wantErr: ErrUnknownField},
		{name: "string with two fields", obj: "123456", fields: []string{FieldPin, FieldPassword}, wantErr: ErrUnknownField},
		{name: "string with unknown field", obj: "x", fields: []string{"email"}, wantErr: ErrUnknownField},
		{name: "unsupported type", obj: 42, wantErr: ErrUnsupportedType},
		{name: "registration unknown field", obj: reg, fields: []string{"email"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Registration
// ---------------------------------------------------------------------------

func TestValidate_Registration(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.Registration)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Registration) {}},
		{name: "bad username", mutate: func(r *models.Registration) { r.Username = "a" }, wantErr: ErrInvalidUsername},
		{name: "bad password", mutate: func(r *models.Registration) { r.Password = "password" }, wantErr: ErrInvalidPassword},
		{name: "bad pin", mutate: func(r *models.Registration) { r.Pin = "12345" }, wantErr: ErrInvalidPin},
		{name: "username checked first", mutate: func(r *models.Registration) { r.Username = ""; r.Pin = "" }, wantErr: ErrInvalidUsername},
		{
			name:   "scoped to pin ignores bad password",
			mutate: func(r *models.Registration) { r.Password = "" },
			fields: []string{FieldPin},
		},
		{
			name:    "scoped to password",
			mutate:  func(r *models.Registration) { r.Password = "" },
			fields:  []string{FieldPassword},
			wantErr: ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			tt.mutate(&reg)

			err := v.Validate(ctx, reg, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ab", true},
		{"alice_01", true},
		{"!#@$%_", true},
		{"", false},
		{"a", false},
		{"with space", false},
		{"dash-name", false},
		{"ünïcode", false},
		{"dot.name", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUsername(tt.in))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Passw0rd!", true},
		{"aB3$aB3$", true},
		{"aB3$aB3", false},  // too short
		{"password1!", false}, // no upper
		{"PASSWORD1!", false}, // no lower
		{"Password!!", false}, // no digit
		{"Password11", false}, // no special
		{"Passw0rd!-", false}, // '-' not allowed
		{"Passw0rd! ", false}, // space not allowed
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.in))
		})
	}
}

func TestIsValidPin(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456", true},
		{"0000000000", true},
		{"12345", false},
		{"12345a", false},
		{"12 456", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPin(tt.in))
		})
	}
}

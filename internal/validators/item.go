package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-pin-vault/models"
)

// Item field names as they appear in the stored JSON document.
const (
	FieldDescription = "description"
	FieldItemLogin   = "username"
	FieldSecret      = "secret"
)

// ItemValidator implements [Validator] for plaintext items. Items are stored
// as JSON, which cannot carry invalid UTF-8 without altering it, so every
// text field must be valid UTF-8.
//
// Accepted values: models.Item, *models.Item and []models.Item.
type ItemValidator struct{}

// NewItemValidator returns a [Validator] for plaintext items.
func NewItemValidator() Validator {
	return &ItemValidator{}
}

// Validate dispatches validation by the dynamic type of obj. Field names are
// not supported.
func (v *ItemValidator) Validate(_ context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	switch value := obj.(type) {
	case models.Item:
		return validateItem(value)
	case *models.Item:
		if value == nil {
			return ErrUnsupportedType
		}
		return validateItem(*value)
	case []models.Item:
		for i, item := range value {
			if err := validateItem(item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func validateItem(item models.Item) error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{FieldDescription, item.Description},
		{FieldItemLogin, item.Username},
		{FieldSecret, item.Secret},
	} {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidItem, f.name)
		}
	}
	return nil
}

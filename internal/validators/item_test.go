package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pin-vault/models"
)

func TestItemValidator_Validate(t *testing.T) {
	ctx := context.Background()
	v := NewItemValidator()

	tests := []struct {
		name    string
		obj     any
		fields  []string
		wantErr error
		wantMsg string
	}{
		{name: "valid item", obj: models.Item{Description: "mail", Username: "a@b.com", Secret: "Xx1!aaaa"}},
		{name: "empty item", obj: models.Item{}},
		{name: "non-ascii utf-8", obj: models.Item{Description: "почта", Secret: "пароль✓"}},
		{name: "pointer", obj: &models.Item{Secret: "ok"}},
		{name: "slice", obj: []models.Item{{Secret: "a"}, {Secret: "b"}}},
		{name: "invalid secret", obj: models.Item{Secret: "pa\xffss\xfe"}, wantErr: ErrInvalidItem, wantMsg: "secret"},
		{name: "invalid description", obj: models.Item{Description: "\xc3\x28"}, wantErr: ErrInvalidItem, wantMsg: "description"},
		{name: "invalid login", obj: &models.Item{Username: "\xff"}, wantErr: ErrInvalidItem, wantMsg: "username"},
		{name: "invalid second item in slice", obj: []models.Item{{Secret: "a"}, {Secret: "\xfe"}}, wantErr: ErrInvalidItem, wantMsg: "item 1"},
		{name: "nil pointer", obj: (*models.Item)(nil), wantErr: ErrUnsupportedType},
		{name: "unsupported type", obj: "secret", wantErr: ErrUnsupportedType},
		{name: "fields not supported", obj: models.Item{}, fields: []string{FieldSecret}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

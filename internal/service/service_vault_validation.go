package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pin-vault/internal/validators"
	"github.com/MKhiriev/go-pin-vault/models"
)

// VaultValidationService checks user input before it reaches the wrapped
// [VaultService], so no key derivation or storage call is made for input
// that can never succeed.
type VaultValidationService struct {
	inner         VaultService
	validator     validators.Validator
	itemValidator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator:     validators.NewCredentialsValidator(),
		itemValidator: validators.NewItemValidator(),
	}
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) Register(ctx context.Context, reg models.Registration) error {
	if err := v.validator.Validate(ctx, reg); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.Register(ctx, reg)
}

// Unlock does not check the username syntax: a name that could never be
// registered fails like any unknown user, with ErrAuthentication.
func (v *VaultValidationService) Unlock(ctx context.Context, username string, method models.UnlockMethod, secret string) (models.MasterKey, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown unlock method %v", ErrValidation, method)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: empty %v", ErrValidation, method)
	}
	return v.inner.Unlock(ctx, username, method, secret)
}

func (v *VaultValidationService) UnlockWithPassword(ctx context.Context, username, password string) (models.MasterKey, error) {
	return v.Unlock(ctx, username, models.UnlockByPassword, password)
}

func (v *VaultValidationService) UnlockWithPin(ctx context.Context, username, pin string) (models.MasterKey, error) {
	return v.Unlock(ctx, username, models.UnlockByPin, pin)
}

func (v *VaultValidationService) Logout() {
	v.inner.Logout()
}

func (v *VaultValidationService) CurrentSession() (Session, bool) {
	return v.inner.CurrentSession()
}

func (v *VaultValidationService) VerifyPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: empty password", ErrValidation)
	}
	return v.inner.VerifyPassword(ctx, username, password)
}

func (v *VaultValidationService) WriteItems(ctx context.Context, username string, key models.MasterKey, items ...models.Item) ([]int64, error) {
	if err := v.validateUsername(ctx, username); err != nil {
		return nil, err
	}
	if err := v.itemValidator.Validate(ctx, items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return v.inner.WriteItems(ctx, username, key, items...)
}

func (v *VaultValidationService) ReadItems(ctx context.Context, username string, key models.MasterKey) ([]models.StoredItem, error) {
	if err := v.validateUsername(ctx, username); err != nil {
		return nil, err
	}
	return v.inner.ReadItems(ctx, username, key)
}

func (v *VaultValidationService) DeleteItem(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: item id %d", ErrValidation, itemID)
	}
	return v.inner.DeleteItem(ctx, itemID)
}

func (v *VaultValidationService) DeleteUser(ctx context.Context, username string) error {
	if err := v.validateUsername(ctx, username); err != nil {
		return err
	}
	return v.inner.DeleteUser(ctx, username)
}

func (v *VaultValidationService) Avatar(ctx context.Context, username string) ([]byte, error) {
	if err := v.validateUsername(ctx, username); err != nil {
		return nil, err
	}
	return v.inner.Avatar(ctx, username)
}

func (v *VaultValidationService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return v.inner.ListUsers(ctx)
}

func (v *VaultValidationService) validateUsername(ctx context.Context, username string) error {
	if err := v.validator.Validate(ctx, username, validators.FieldUsername); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

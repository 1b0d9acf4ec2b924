package service

import (
	"github.com/MKhiriev/go-pin-vault/internal/crypto"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/internal/store"
)

type Services struct {
	VaultService VaultService
}

// NewServices wires the vault service over the given storages with input
// validation in front of it.
func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	core := NewVaultService(storages.UserRepository, storages.ItemRepository, crypto.NewKeyChainService(), logger)

	return &Services{
		VaultService: NewVaultValidationService().Wrap(core),
	}
}

package service

import (
	"context"

	"github.com/MKhiriev/go-pin-vault/models"
)

// VaultService manages registration, unlocking and the encrypted items of
// vault users. An instance holds at most one session at a time.
type VaultService interface {
	// Register creates a user with a fresh master key wrapped under both the
	// password and the PIN.
	Register(ctx context.Context, reg models.Registration) error

	// Unlock recovers the master key through the wrap record selected by
	// method and opens a session. The returned key is a copy owned by the
	// caller.
	Unlock(ctx context.Context, username string, method models.UnlockMethod, secret string) (models.MasterKey, error)
	UnlockWithPassword(ctx context.Context, username, password string) (models.MasterKey, error)
	UnlockWithPin(ctx context.Context, username, pin string) (models.MasterKey, error)

	// Logout zeroes the session key and closes the session. It is a no-op
	// without an open session.
	Logout()

	// CurrentSession reports the open session, without its key.
	CurrentSession() (Session, bool)

	// VerifyPassword checks the password of username without opening a
	// session.
	VerifyPassword(ctx context.Context, username, password string) error

	WriteItems(ctx context.Context, username string, key models.MasterKey, items ...models.Item) ([]int64, error)
	ReadItems(ctx context.Context, username string, key models.MasterKey) ([]models.StoredItem, error)
	DeleteItem(ctx context.Context, itemID int64) error

	// DeleteUser removes the user and all of its items, and closes the
	// session if it belongs to that user.
	DeleteUser(ctx context.Context, username string) error

	// Avatar returns the avatar image of username, nil when none was stored.
	Avatar(ctx context.Context, username string) ([]byte, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

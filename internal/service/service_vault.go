package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pin-vault/internal/crypto"
	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/internal/store"
	"github.com/MKhiriev/go-pin-vault/models"
)

type vaultService struct {
	users    store.UserRepository
	items    store.ItemRepository
	keyChain crypto.KeyChainService

	newSessionID func() uuid.UUID
	now          func() time.Time

	logger *logger.Logger

	mu      sync.Mutex
	session *activeSession
}

// NewVaultService returns the core [VaultService]. It expects validated
// input; compose it with [NewVaultValidationService] for user-facing use.
func NewVaultService(users store.UserRepository, items store.ItemRepository, keyChain crypto.KeyChainService, logger *logger.Logger) VaultService {
	return &vaultService{
		users:        users,
		items:        items,
		keyChain:     keyChain,
		newSessionID: newSessionID,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *vaultService) Register(ctx context.Context, reg models.Registration) error {
	log := s.logger.With().Str("func", "*vaultService.Register").Str("username", reg.Username).Logger()

	masterKey, err := s.keyChain.GenerateMasterKey()
	if err != nil {
		log.Err(err).Msg("error generating master key")
		return fmt.Errorf("%w: generate master key: %w", ErrInternal, err)
	}
	defer models.MasterKey(masterKey).Zero()

	passwordKey, err := s.keyChain.WrapMasterKey(masterKey, reg.Password)
	if err != nil {
		log.Err(err).Msg("error wrapping master key under password")
		return fmt.Errorf("%w: wrap under password: %w", ErrInternal, err)
	}

	pinKey, err := s.keyChain.WrapMasterKey(masterKey, reg.Pin)
	if err != nil {
		log.Err(err).Msg("error wrapping master key under pin")
		return fmt.Errorf("%w: wrap under pin: %w", ErrInternal, err)
	}

	id, err := s.users.CreateUser(ctx, models.User{
		Username:    reg.Username,
		Avatar:      reg.Avatar,
		PasswordKey: passwordKey,
		PinKey:      pinKey,
	})
	if err != nil {
		if !errors.Is(err, store.ErrUsernameAlreadyExists) {
			log.Err(err).Msg("error saving user")
		}
		return mapStoreError(err)
	}

	log.Info().Int64("user_id", id).Msg("user registered")
	return nil
}

func (s *vaultService) Unlock(ctx context.Context, username string, method models.UnlockMethod, secret string) (models.MasterKey, error) {
	log := s.logger.With().Str("func", "*vaultService.Unlock").Str("username", username).Stringer("method", method).Logger()

	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown unlock method %v", ErrValidation, method)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: empty %v", ErrValidation, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil, ErrSessionActive
	}

	masterKey, err := s.unwrap(ctx, username, method, secret)
	if err != nil {
		log.Warn().Err(err).Msg("unlock failed")
		return nil, err
	}

	s.session = &activeSession{
		Session: Session{
			ID:        s.newSessionID(),
			Username:  username,
			Method:    method,
			StartedAt: s.now(),
		},
		key: masterKey,
	}

	log.Info().Stringer("session_id", s.session.ID).Msg("session opened")
	return masterKey.Clone(), nil
}

func (s *vaultService) UnlockWithPassword(ctx context.Context, username, password string) (models.MasterKey, error) {
	return s.Unlock(ctx, username, models.UnlockByPassword, password)
}

func (s *vaultService) UnlockWithPin(ctx context.Context, username, pin string) (models.MasterKey, error) {
	return s.Unlock(ctx, username, models.UnlockByPin, pin)
}

// unwrap loads the wrap record of method and recovers the master key. An
// unknown user and a wrong secret are indistinguishable to the caller.
func (s *vaultService) unwrap(ctx context.Context, username string, method models.UnlockMethod, secret string) (models.MasterKey, error) {
	wrapped, err := s.users.GetWrappedKey(ctx, username, method)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrAuthentication
		}
		return nil, mapStoreError(err)
	}

	masterKey, err := s.keyChain.UnwrapMasterKey(wrapped, secret)
	if err != nil {
		return nil, ErrAuthentication
	}

	return models.MasterKey(masterKey), nil
}

func (s *vaultService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeSessionLocked()
}

func (s *vaultService) closeSessionLocked() {
	if s.session == nil {
		return
	}

	s.logger.Info().
		Str("func", "*vaultService.Logout").
		Stringer("session_id", s.session.ID).
		Dur("duration", s.now().Sub(s.session.StartedAt)).
		Msg("session closed")

	s.session.close()
	s.session = nil
}

func (s *vaultService) CurrentSession() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return Session{}, false
	}
	return s.session.Session, true
}

func (s *vaultService) VerifyPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: empty password", ErrValidation)
	}

	masterKey, err := s.unwrap(ctx, username, models.UnlockByPassword, password)
	if err != nil {
		return err
	}
	masterKey.Zero()

	return nil
}

func (s *vaultService) WriteItems(ctx context.Context, username string, key models.MasterKey, items ...models.Item) ([]int64, error) {
	log := s.logger.With().Str("func", "*vaultService.WriteItems").Str("username", username).Logger()

	blobs := make([][]byte, 0, len(items))
	for i, item := range items {
		plaintext, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("%w: encode item %d: %w", ErrInternal, i, err)
		}

		blob, err := s.keyChain.Encrypt(plaintext, key)
		zeroBytes(plaintext)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("error encrypting item")
			return nil, ErrAuthentication
		}
		blobs = append(blobs, blob)
	}

	ids, err := s.items.SaveItems(ctx, username, blobs...)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Msg("error saving items")
		}
		return nil, mapStoreError(err)
	}

	log.Debug().Int("count", len(ids)).Msg("items written")
	return ids, nil
}

func (s *vaultService) ReadItems(ctx context.Context, username string, key models.MasterKey) ([]models.StoredItem, error) {
	log := s.logger.With().Str("func", "*vaultService.ReadItems").Str("username", username).Logger()

	encrypted, err := s.items.GetItems(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Msg("error loading items")
		}
		return nil, mapStoreError(err)
	}

	items := make([]models.StoredItem, 0, len(encrypted))
	for _, enc := range encrypted {
		plaintext, err := s.keyChain.Decrypt(enc.Ciphertext, key)
		if err != nil {
			log.Warn().Err(err).Int64("item_id", enc.ID).Msg("error decrypting item")
			return nil, ErrAuthentication
		}

		var item models.Item
		err = json.Unmarshal(plaintext, &item)
		zeroBytes(plaintext)
		if err != nil {
			log.Warn().Int64("item_id", enc.ID).Msg("decrypted item is not valid json")
			return nil, ErrAuthentication
		}

		items = append(items, models.StoredItem{ID: enc.ID, Item: item})
	}

	return items, nil
}

func (s *vaultService) DeleteItem(ctx context.Context, itemID int64) error {
	if err := s.items.DeleteItem(ctx, itemID); err != nil {
		if !errors.Is(err, store.ErrItemNotFound) {
			s.logger.Err(err).Str("func", "*vaultService.DeleteItem").Int64("item_id", itemID).Msg("error deleting item")
		}
		return mapStoreError(err)
	}
	return nil
}

func (s *vaultService) DeleteUser(ctx context.Context, username string) error {
	log := s.logger.With().Str("func", "*vaultService.DeleteUser").Str("username", username).Logger()

	if err := s.users.DeleteUser(ctx, username); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Msg("error deleting user")
		}
		return mapStoreError(err)
	}

	s.mu.Lock()
	if s.session != nil && s.session.Username == username {
		s.closeSessionLocked()
	}
	s.mu.Unlock()

	log.Info().Msg("user deleted")
	return nil
}

func (s *vaultService) Avatar(ctx context.Context, username string) ([]byte, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Err(err).Str("func", "*vaultService.Avatar").Str("username", username).Msg("error loading user")
		}
		return nil, mapStoreError(err)
	}
	return user.Avatar, nil
}

func (s *vaultService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "*vaultService.ListUsers").Msg("error listing users")
		return nil, mapStoreError(err)
	}
	return users, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

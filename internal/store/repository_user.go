package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/models"
)

// userRepository is the SQLite-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext].
// Key material is never logged.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user with both wrap records.
//
// Error handling:
//   - UNIQUE constraint on username → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		res, err := conn.ExecContext(ctx, createUser,
			user.Username,
			nullableBlob(user.Avatar),
			user.PasswordKey.Blob,
			user.PasswordKey.Salt,
			user.PinKey.Blob,
			user.PinKey.Salt,
		)
		if err != nil {
			if ClassifySQLiteError(err) == UniqueViolation {
				return ErrUsernameAlreadyExists
			}
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error reading inserted id")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// FindUserByUsername retrieves the full user row.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrUserNotFound].
//   - Any other error → wrapped [ErrScanningRow].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		err := conn.QueryRowContext(ctx, findUserByUsername, username).Scan(
			&user.ID,
			&user.Username,
			&user.Avatar,
			&user.PasswordKey.Blob,
			&user.PasswordKey.Salt,
			&user.PinKey.Blob,
			&user.PinKey.Salt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error scanning user")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// GetWrappedKey retrieves the blob and salt of one unlock method.
func (r *userRepository) GetWrappedKey(ctx context.Context, username string, method models.UnlockMethod) (models.WrappedKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetWrappedKeyQuery(username, method)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetWrappedKey").Msg("error building query")
		return models.WrappedKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var wrapped models.WrappedKey
	err = r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		err := conn.QueryRowContext(ctx, query, args...).Scan(&wrapped.Blob, &wrapped.Salt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			log.Err(err).Str("func", "*userRepository.GetWrappedKey").Stringer("method", method).Msg("error scanning wrapped key")
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		return models.WrappedKey{}, err
	}

	return wrapped, nil
}

// ListUsers returns the username and avatar of every user ordered by id.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users := make([]models.UserSummary, 0)
	err = r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error querying users")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var user models.UserSummary
			if err = rows.Scan(&user.Username, &user.Avatar); err != nil {
				log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user row")
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			users = append(users, user)
		}

		if err = rows.Err(); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating user rows")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// DeleteUser removes all items of the user and then the user itself in a
// single transaction.
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	return r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		userID, err := findUserID(ctx, tx, username)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) {
				log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error looking up user")
			}
			return err
		}

		if _, err = tx.ExecContext(ctx, deleteUserItems, userID); err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error deleting user items")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if _, err = tx.ExecContext(ctx, deleteUser, userID); err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error deleting user")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		log.Debug().Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("user deleted")
		return nil
	})
}

// findUserID resolves a username to its id on the given connection.
func findUserID(ctx context.Context, conn DBTX, username string) (int64, error) {
	var id int64
	err := conn.QueryRowContext(ctx, findUserIDByUsername, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return id, nil
}

// nullableBlob stores an absent avatar as NULL instead of an empty blob.
func nullableBlob(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pin-vault/internal/logger"
	"github.com/MKhiriev/go-pin-vault/models"
)

type itemRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *itemRepository) SaveItems(ctx context.Context, username string, blobs ...[]byte) ([]int64, error) {
	log := logger.FromContext(ctx)

	ids := make([]int64, 0, len(blobs))
	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		userID, err := findUserID(ctx, tx, username)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) {
				log.Err(err).Str("func", "*itemRepository.SaveItems").Msg("error looking up user")
			}
			return err
		}

		for i, blob := range blobs {
			res, err := tx.ExecContext(ctx, saveItem, userID, blob)
			if err != nil {
				log.Err(err).
					Str("func", "*itemRepository.SaveItems").
					Int64("user_id", userID).
					Int("index", i).
					Msg("failed to insert item")
				return fmt.Errorf("%w: item %d: %w", ErrExecutingStatement, i, err)
			}

			id, err := res.LastInsertId()
			if err != nil {
				log.Err(err).Str("func", "*itemRepository.SaveItems").Msg("failed to read inserted id")
				return fmt.Errorf("%w: item %d: %w", ErrExecutingStatement, i, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *itemRepository) GetItems(ctx context.Context, username string) ([]models.EncryptedItem, error) {
	log := logger.FromContext(ctx)

	items := make([]models.EncryptedItem, 0)
	err := r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		userID, err := findUserID(ctx, conn, username)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) {
				log.Err(err).Str("func", "*itemRepository.GetItems").Msg("error looking up user")
			}
			return err
		}

		rows, err := conn.QueryContext(ctx, getUserItems, userID)
		if err != nil {
			log.Err(err).
				Str("func", "*itemRepository.GetItems").
				Int64("user_id", userID).
				Msg("failed to execute query for getting user items")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var item models.EncryptedItem
			if err = rows.Scan(&item.ID, &item.UserID, &item.Ciphertext); err != nil {
				log.Err(err).
					Str("func", "*itemRepository.GetItems").
					Int64("user_id", userID).
					Msg("failed to scan item row")
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			items = append(items, item)
		}

		if err = rows.Err(); err != nil {
			log.Err(err).
				Str("func", "*itemRepository.GetItems").
				Int64("user_id", userID).
				Msg("error occurred during rows iteration")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	return r.db.WithConn(ctx, func(ctx context.Context, conn DBTX) error {
		res, err := conn.ExecContext(ctx, deleteItem, itemID)
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.DeleteItem").Int64("item_id", itemID).Msg("failed to delete item")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.DeleteItem").Int64("item_id", itemID).Msg("failed to read affected rows")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

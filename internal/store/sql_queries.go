// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pin-vault/models"
)

const (
	createUser = `
		INSERT INTO users (
			username,
			image,
			master_key_passw,
			master_key_passw_salt,
			master_key_pin,
			master_key_pin_salt
		) VALUES (?, ?, ?, ?, ?, ?);`

	findUserByUsername = `
		SELECT
			id,
			username,
			image,
			master_key_passw,
			master_key_passw_salt,
			master_key_pin,
			master_key_pin_salt
		FROM users
		WHERE username = ?;`

	findUserIDByUsername = `SELECT id FROM users WHERE username = ?;`

	deleteUserItems = `DELETE FROM data WHERE user_id = ?;`
	deleteUser      = `DELETE FROM users WHERE id = ?;`

	saveItem = `INSERT INTO data (user_id, encrypted_data) VALUES (?, ?);`

	getUserItems = `
		SELECT
			id,
			user_id,
			encrypted_data
		FROM data
		WHERE user_id = ?
		ORDER BY id;`

	deleteItem = `DELETE FROM data WHERE id = ?;`
)

// SQLite uses "?" placeholders for both supported drivers.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// wrappedKeyColumns maps each unlock method to its blob and salt columns.
var wrappedKeyColumns = map[models.UnlockMethod][2]string{
	models.UnlockByPassword: {"master_key_passw", "master_key_passw_salt"},
	models.UnlockByPin:      {"master_key_pin", "master_key_pin_salt"},
}

// buildGetWrappedKeyQuery selects the wrap record of one unlock method only.
func buildGetWrappedKeyQuery(username string, method models.UnlockMethod) (string, []any, error) {
	columns, ok := wrappedKeyColumns[method]
	if !ok {
		return "", nil, fmt.Errorf("%w: %v", ErrUnknownUnlockMethod, method)
	}

	return psql.
		Select(columns[0], columns[1]).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
}

// buildListUsersQuery selects the public columns of every user.
func buildListUsersQuery() (string, []any, error) {
	return psql.
		Select("username", "image").
		From(models.User{}.TableName()).
		OrderBy("id").
		ToSql()
}

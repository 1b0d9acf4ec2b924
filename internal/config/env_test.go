// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("CONFIG", "/path/to/config.json")
	t.Setenv("STORAGE_DB_DSN", "/var/lib/vault/vault.db")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/vault.log")

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/lib/vault/vault.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/vault.log", cfg.Log.File)
}

func TestParseEnv_Empty(t *testing.T) {
	clearEnv(t)

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

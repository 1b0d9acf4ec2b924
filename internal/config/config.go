// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level configuration container of the vault. It
// is populated by merging command-line flags, environment variables and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the settings of the local credential store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database file.
type DB struct {
	// DSN is the database file path or SQLite URI (e.g. "vault.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// Driver is the database/sql driver name: "sqlite" (modernc.org/sqlite,
	// pure Go) or "sqlite3" (mattn/go-sqlite3, cgo).
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the path of the log file. Empty means a "logs" file next to
	// the executable.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Supported database/sql driver names.
const (
	DriverModernSQLite = "sqlite"
	DriverCgoSQLite    = "sqlite3"
)

// defaults is merged last, so it only fills fields no other source set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN:    "vault.db",
				Driver: DriverModernSQLite,
			},
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetStructuredConfig loads, merges and validates the configuration. flags
// holds the values parsed from the command line (see [NewFlagSet]); it may be
// nil. Sources are merged in the following priority order (the first
// non-zero value of a field wins):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		withDefaults().
		build()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] can be used to
// open the vault. An in-memory DSN is rejected: every CLI invocation is a
// new process, so an in-memory vault would lose its users immediately.
func (cfg *StructuredConfig) validate() error {
	dsn := cfg.Storage.DB.DSN
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return fmt.Errorf("%w: dsn %q", ErrInvalidStorageConfigs, dsn)
	}

	switch cfg.Storage.DB.Driver {
	case DriverModernSQLite, DriverCgoSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}

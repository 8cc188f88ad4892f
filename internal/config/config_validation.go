// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-myself-vault/internal/crypto"
)

// validate checks the merged [StructuredConfig] before it is used at
// startup.
func (cfg *StructuredConfig) validate() error {
	dsn := strings.TrimSpace(cfg.Storage.DB.DSN)
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return fmt.Errorf("%w: a persistent DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.KDFIterations < crypto.KDFIterations {
		return fmt.Errorf("%w: kdf iterations must be at least %d", ErrInvalidAppConfigs, crypto.KDFIterations)
	}
	if cfg.App.Version == "" {
		return fmt.Errorf("%w: empty version", ErrInvalidAppConfigs)
	}

	if cfg.Session.ShortTTL <= 0 || cfg.Session.LongTTL < cfg.Session.ShortTTL {
		return fmt.Errorf("%w: need 0 < short ttl <= long ttl", ErrInvalidSessionConfigs)
	}
	if cfg.Session.SweepInterval <= 0 {
		return fmt.Errorf("%w: sweep interval must be positive", ErrInvalidSessionConfigs)
	}

	if cfg.Export.Dir == "" {
		return fmt.Errorf("%w: empty export dir", ErrInvalidExportConfigs)
	}

	return nil
}

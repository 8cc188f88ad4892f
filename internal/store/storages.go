package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
)

// LocalStorages is the SQLite-backed [Storage] of one installation.
type LocalStorages struct {
	db    *DB
	repos *Repositories
}

// NewLocalStorages opens the SQLite file named by cfg.DSN, creating it if
// needed, applies pending migrations and wires the repositories.
func NewLocalStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*LocalStorages, error) {
	log.Info().Msg("opening local storage...")

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newLocalStorages(db), nil
}

func newLocalStorages(db *DB) *LocalStorages {
	return &LocalStorages{
		db:    db,
		repos: newRepositories(db, db.logger),
	}
}

func (s *LocalStorages) Repositories() *Repositories {
	return s.repos
}

// WithTx runs fn with repositories bound to one transaction. Nothing fn
// writes is visible unless it returns nil.
func (s *LocalStorages) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	return s.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, newRepositories(tx, s.db.logger))
	})
}

func (s *LocalStorages) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
)

type settingsRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewSettingsRepository(db DBTX, log *logger.Logger) SettingsRepository {
	return &settingsRepository{db: db, logger: log}
}

func (r *settingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row, err := queryRowBuilt(ctx, r.db, sqlite.Select("value").From(tableSettings).Where(sq.Eq{"key": key}))
	if err != nil {
		return nil, err
	}

	var value []byte
	err = row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "settingsRepository.Get").Str("key", key).Msg("failed to read setting")
		return nil, fmt.Errorf("%w: setting %s: %w", ErrScanningRow, key, err)
	}
	return value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := execBuilt(ctx, r.db, sqlite.Insert(tableSettings).
		Columns("key", "value").
		Values(key, value).
		Suffix(upsertSetting))
	if err != nil {
		r.logger.Err(err).Str("func", "settingsRepository.Set").Str("key", key).Msg("failed to write setting")
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	_, err := execBuilt(ctx, r.db, sqlite.Delete(tableSettings).Where(sq.Eq{"key": key}))
	if err != nil {
		r.logger.Err(err).Str("func", "settingsRepository.Delete").Str("key", key).Msg("failed to delete setting")
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

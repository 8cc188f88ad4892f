package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/models"
)

// DiaryRecord is a diary row as stored. When ContentEncrypted is set,
// Entry.Content holds the base64 envelope of the real content.
type DiaryRecord struct {
	Entry            models.DiaryEntry
	ContentEncrypted bool
}

type diaryRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewDiaryRepository(db DBTX, log *logger.Logger) DiaryRepository {
	return &diaryRepository{db: db, logger: log}
}

func (r *diaryRepository) List(ctx context.Context) ([]DiaryRecord, error) {
	rows, err := queryBuilt(ctx, r.db, sqlite.Select(diaryColumns...).From(tableDiary).OrderBy("created_at", "id"))
	if err != nil {
		r.logger.Err(err).Str("func", "diaryRepository.List").Msg("failed to query diary")
		return nil, err
	}
	defer rows.Close()

	var out []DiaryRecord
	for rows.Next() {
		var rec DiaryRecord
		e := &rec.Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &rec.ContentEncrypted, &e.Mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
			r.logger.Err(err).Str("func", "diaryRepository.List").Msg("failed to scan diary row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

func (r *diaryRepository) Insert(ctx context.Context, records ...DiaryRecord) error {
	for _, batch := range chunks(records, insertBatchSize) {
		b := sqlite.Insert(tableDiary).Columns(diaryColumns...)
		for _, rec := range batch {
			e := rec.Entry
			b = b.Values(e.ID, e.Title, e.Content, boolToInt(rec.ContentEncrypted), e.Mood, e.CreatedAt, e.UpdatedAt)
		}

		if _, err := execBuilt(ctx, r.db, b); err != nil {
			r.logger.Err(err).Str("func", "diaryRepository.Insert").Int("count", len(batch)).Msg("failed to insert diary entries")
			return fmt.Errorf("insert diary: %w", err)
		}
	}
	return nil
}

func (r *diaryRepository) DeleteAll(ctx context.Context) error {
	if _, err := execBuilt(ctx, r.db, sqlite.Delete(tableDiary)); err != nil {
		r.logger.Err(err).Str("func", "diaryRepository.DeleteAll").Msg("failed to delete diary")
		return fmt.Errorf("delete diary: %w", err)
	}
	return nil
}

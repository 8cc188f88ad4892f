package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/models"
)

type testRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewTestRepository(db DBTX, log *logger.Logger) TestRepository {
	return &testRepository{db: db, logger: log}
}

func (r *testRepository) List(ctx context.Context, types ...string) ([]models.TestRecord, error) {
	b := sqlite.Select(testColumns...).From(tableTests).OrderBy("completed_at", "id")
	if len(types) > 0 {
		b = b.Where(sq.Eq{"type": types})
	}

	rows, err := queryBuilt(ctx, r.db, b)
	if err != nil {
		r.logger.Err(err).Str("func", "testRepository.List").Strs("types", types).Msg("failed to query tests")
		return nil, err
	}
	defer rows.Close()

	var out []models.TestRecord
	for rows.Next() {
		var (
			rec    models.TestRecord
			result string
		)
		if err := rows.Scan(&rec.ID, &rec.Type, &result, &rec.Analysis, &rec.CompletedAt); err != nil {
			r.logger.Err(err).Str("func", "testRepository.List").Msg("failed to scan test row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec.Result = json.RawMessage(result)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

func (r *testRepository) Insert(ctx context.Context, records ...models.TestRecord) error {
	for _, batch := range chunks(records, insertBatchSize) {
		b := sqlite.Insert(tableTests).Columns(testColumns...)
		for _, rec := range batch {
			result := string(rec.Result)
			if result == "" {
				result = "null"
			}
			b = b.Values(rec.ID, rec.Type, result, rec.Analysis, rec.CompletedAt)
		}

		if _, err := execBuilt(ctx, r.db, b); err != nil {
			r.logger.Err(err).Str("func", "testRepository.Insert").Int("count", len(batch)).Msg("failed to insert tests")
			return fmt.Errorf("insert tests: %w", err)
		}
	}
	return nil
}

func (r *testRepository) DeleteAll(ctx context.Context) error {
	if _, err := execBuilt(ctx, r.db, sqlite.Delete(tableTests)); err != nil {
		r.logger.Err(err).Str("func", "testRepository.DeleteAll").Msg("failed to delete tests")
		return fmt.Errorf("delete tests: %w", err)
	}
	return nil
}

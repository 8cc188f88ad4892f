package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
	"github.com/MKhiriev/go-myself-vault/internal/validators"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

type recordService struct {
	storage   store.Storage
	ids       utils.IDGenerator
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

func NewRecordService(storage store.Storage, ids utils.IDGenerator, log *logger.Logger) RecordService {
	return &recordService{
		storage:   storage,
		ids:       ids,
		validator: validators.NewRecordValidator(),
		now:       time.Now,
		logger:    log,
	}
}

func (r *recordService) AddTest(ctx context.Context, record models.TestRecord) (models.TestRecord, error) {
	if err := r.validator.Validate(ctx, record); err != nil {
		return models.TestRecord{}, err
	}
	if record.ID == "" {
		record.ID = r.ids.Generate()
	}
	if record.CompletedAt == 0 {
		record.CompletedAt = r.now().UnixMilli()
	}

	if err := r.storage.Repositories().Tests.Insert(ctx, record); err != nil {
		r.logger.Err(err).Str("func", "recordService.AddTest").Str("type", record.Type).Msg("failed to store test")
		return models.TestRecord{}, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}
	return record, nil
}

func (r *recordService) ListTests(ctx context.Context, types ...string) ([]models.TestRecord, error) {
	tests, err := r.storage.Repositories().Tests.List(ctx, types...)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return tests, nil
}

func (r *recordService) AddDiary(ctx context.Context, u *vault.Unlocked, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if err := r.validator.Validate(ctx, entry); err != nil {
		return models.DiaryEntry{}, err
	}
	if entry.ID == "" {
		entry.ID = r.ids.Generate()
	}
	now := r.now().UnixMilli()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = entry.CreatedAt
	}

	sealed, err := sealDiary(u, []models.DiaryEntry{entry})
	if err != nil {
		return models.DiaryEntry{}, err
	}

	if err = r.storage.Repositories().Diary.Insert(ctx, sealed...); err != nil {
		r.logger.Err(err).Str("func", "recordService.AddDiary").Msg("failed to store diary entry")
		return models.DiaryEntry{}, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}
	return entry, nil
}

func (r *recordService) ListDiary(ctx context.Context, u *vault.Unlocked) ([]models.DiaryEntry, error) {
	records, err := r.storage.Repositories().Diary.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diary: %w", err)
	}
	return revealDiary(u, records)
}

func (r *recordService) ImportLegacyDiary(ctx context.Context, u *vault.Unlocked, raw []byte) (int, error) {
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLegacyDiary, err)
	}

	records := make([]store.DiaryRecord, 0, len(items))
	for _, item := range items {
		rec, err := r.legacyDiaryRecord(u, item)
		if err != nil {
			return 0, err
		}
		records = append(records, rec)
	}

	err := r.storage.WithTx(ctx, func(ctx context.Context, tx *store.Repositories) error {
		return tx.Diary.Insert(ctx, records...)
	})
	if err != nil {
		r.logger.Err(err).Str("func", "recordService.ImportLegacyDiary").Int("count", len(records)).Msg("failed to store legacy diary")
		return 0, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}
	return len(records), nil
}

func (r *recordService) legacyDiaryRecord(u *vault.Unlocked, item map[string]any) (store.DiaryRecord, error) {
	fields := vault.DecodeSiblings(item)

	content := fields["content"]
	if !content.Encrypted() {
		if u == nil {
			return store.DiaryRecord{}, vault.ErrLocked
		}
		plain, _ := content.Columns()
		sealed, err := u.EncryptField(plain)
		if err != nil {
			return store.DiaryRecord{}, fmt.Errorf("encrypt legacy diary content: %w", err)
		}
		content = sealed
	}

	entry := models.DiaryEntry{
		ID:        plainValue(fields, "id"),
		Title:     plainValue(fields, "title"),
		Mood:      plainValue(fields, "mood"),
		CreatedAt: millis(item["createdAt"]),
		UpdatedAt: millis(item["updatedAt"]),
	}
	if entry.ID == "" {
		entry.ID = r.ids.Generate()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = r.now().UnixMilli()
	}
	if entry.UpdatedAt == 0 {
		entry.UpdatedAt = entry.CreatedAt
	}

	value, encrypted := content.Columns()
	entry.Content = value
	return store.DiaryRecord{Entry: entry, ContentEncrypted: encrypted}, nil
}

func plainValue(fields map[string]vault.Field, key string) string {
	f, ok := fields[key]
	if !ok || f.Encrypted() {
		return ""
	}
	v, _ := f.Columns()
	return v
}

// millis reads a JSON number (decoded as float64) as unix milliseconds.
func millis(v any) int64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int64(f)
}

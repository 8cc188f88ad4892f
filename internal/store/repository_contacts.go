package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/models"
)

// contactPayload is the JSON stored in contacts.payload.
type contactPayload struct {
	Tests   []models.TestRecord `json:"tests"`
	Diary   []models.DiaryEntry `json:"diary"`
	Profile *models.Profile     `json:"profile"`
}

type contactRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewContactRepository(db DBTX, log *logger.Logger) ContactRepository {
	return &contactRepository{db: db, logger: log}
}

func (r *contactRepository) Insert(ctx context.Context, c models.ContactSnapshot) error {
	payload, err := encodeContactPayload(c)
	if err != nil {
		return err
	}

	_, err = execBuilt(ctx, r.db, sqlite.Insert(tableContacts).
		Columns(contactColumns...).
		Values(c.ID, c.Name, c.Remark, payload, c.ImportedAt, c.SourceVersion))
	if err != nil {
		r.logger.Err(err).Str("func", "contactRepository.Insert").Str("contact_id", c.ID).Msg("failed to insert contact")
		return fmt.Errorf("insert contact %s: %w", c.ID, err)
	}
	return nil
}

func (r *contactRepository) Get(ctx context.Context, id string) (models.ContactSnapshot, error) {
	row, err := queryRowBuilt(ctx, r.db, sqlite.Select(contactColumns...).From(tableContacts).Where(sq.Eq{"id": id}))
	if err != nil {
		return models.ContactSnapshot{}, err
	}

	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContactSnapshot{}, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "contactRepository.Get").Str("contact_id", id).Msg("failed to read contact")
		return models.ContactSnapshot{}, err
	}
	return c, nil
}

func (r *contactRepository) List(ctx context.Context) ([]models.ContactSnapshot, error) {
	return r.list(ctx, sqlite.Select(contactColumns...).From(tableContacts).OrderBy("name", "imported_at"))
}

func (r *contactRepository) FindByName(ctx context.Context, name string) ([]models.ContactSnapshot, error) {
	return r.list(ctx, sqlite.Select(contactColumns...).
		From(tableContacts).
		Where(sq.Eq{"name": name}).
		OrderBy("imported_at"))
}

func (r *contactRepository) list(ctx context.Context, b sq.SelectBuilder) ([]models.ContactSnapshot, error) {
	rows, err := queryBuilt(ctx, r.db, b)
	if err != nil {
		r.logger.Err(err).Str("func", "contactRepository.list").Msg("failed to query contacts")
		return nil, err
	}
	defer rows.Close()

	var out []models.ContactSnapshot
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			r.logger.Err(err).Str("func", "contactRepository.list").Msg("failed to scan contact row")
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *contactRepository) Replace(ctx context.Context, c models.ContactSnapshot) error {
	payload, err := encodeContactPayload(c)
	if err != nil {
		return err
	}

	return r.updateOne(ctx, "contactRepository.Replace", c.ID, sqlite.Update(tableContacts).
		SetMap(map[string]any{
			"name":           c.Name,
			"remark":         c.Remark,
			"payload":        payload,
			"imported_at":    c.ImportedAt,
			"source_version": c.SourceVersion,
		}).
		Where(sq.Eq{"id": c.ID}))
}

func (r *contactRepository) UpdateRemark(ctx context.Context, id, remark string) error {
	return r.updateOne(ctx, "contactRepository.UpdateRemark", id, sqlite.Update(tableContacts).
		Set("remark", remark).
		Where(sq.Eq{"id": id}))
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	return r.updateOne(ctx, "contactRepository.Delete", id, sqlite.Delete(tableContacts).Where(sq.Eq{"id": id}))
}

// updateOne runs a statement that must touch exactly the row with id.
func (r *contactRepository) updateOne(ctx context.Context, fn, id string, b sq.Sqlizer) error {
	res, err := execBuilt(ctx, r.db, b)
	if err != nil {
		r.logger.Err(err).Str("func", fn).Str("contact_id", id).Msg("failed to write contact")
		return fmt.Errorf("write contact %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.ContactSnapshot, error) {
	var (
		c       models.ContactSnapshot
		payload string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Remark, &payload, &c.ImportedAt, &c.SourceVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var p contactPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return c, fmt.Errorf("%w: contact %s: %w", ErrDecodingPayload, c.ID, err)
	}
	c.Tests, c.Diary, c.Profile = p.Tests, p.Diary, p.Profile
	return c, nil
}

func encodeContactPayload(c models.ContactSnapshot) (string, error) {
	raw, err := json.Marshal(contactPayload{Tests: c.Tests, Diary: c.Diary, Profile: c.Profile})
	if err != nil {
		return "", fmt.Errorf("encode contact %s: %w", c.ID, err)
	}
	return string(raw), nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// sqlite renders squirrel builders with "?" placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	tableSettings = "settings"
	tableProfile  = "profile"
	tableTests    = "tests"
	tableDiary    = "diary"
	tableContacts = "contacts"
	tableSessions = "sessions"
)

var (
	profileColumns = []string{"name", "gender", "birthday", "contact_info", "bio", "installation_id"}
	testColumns    = []string{"id", "type", "result", "analysis", "completed_at"}
	diaryColumns   = []string{"id", "title", "content", "content_encrypted", "mood", "created_at", "updated_at"}
	contactColumns = []string{"id", "name", "remark", "payload", "imported_at", "source_version"}
	sessionColumns = []string{"token", "created_at", "expires_at", "salt_ref", "recovery", "remember"}
)

// insertBatchSize bounds the rows of one multi-row INSERT so the bound
// variable count stays well under SQLite's limit.
const insertBatchSize = 100

const (
	upsertSetting = "ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	upsertProfile = `ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		gender = excluded.gender,
		birthday = excluded.birthday,
		contact_info = excluded.contact_info,
		bio = excluded.bio,
		installation_id = excluded.installation_id`
	upsertSession = `ON CONFLICT(token) DO UPDATE SET
		expires_at = excluded.expires_at,
		recovery = excluded.recovery,
		remember = excluded.remember`
)

func execBuilt(ctx context.Context, db DBTX, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return res, nil
}

func queryBuilt(ctx context.Context, db DBTX, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rows, nil
}

func queryRowBuilt(ctx context.Context, db DBTX, b sq.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return db.QueryRowContext(ctx, query, args...), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

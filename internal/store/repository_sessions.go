package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/models"
)

type sessionRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewSessionRepository(db DBTX, log *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: log}
}

func (r *sessionRepository) Save(ctx context.Context, s models.Session) error {
	_, err := execBuilt(ctx, r.db, sqlite.Insert(tableSessions).
		Columns(sessionColumns...).
		Values(s.Token, s.CreatedAt.UnixMilli(), s.ExpiresAt.UnixMilli(), s.SaltRef, string(s.Recovery), boolToInt(s.Remember)).
		Suffix(upsertSession))
	if err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Save").Msg("failed to save session")
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Latest(ctx context.Context) (*models.Session, error) {
	row, err := queryRowBuilt(ctx, r.db, sqlite.Select(sessionColumns...).
		From(tableSessions).
		OrderBy("created_at DESC").
		Limit(1))
	if err != nil {
		return nil, err
	}

	var (
		s                models.Session
		created, expires int64
		recovery         string
	)
	err = row.Scan(&s.Token, &created, &expires, &s.SaltRef, &recovery, &s.Remember)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Latest").Msg("failed to scan session row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	s.CreatedAt = time.UnixMilli(created)
	s.ExpiresAt = time.UnixMilli(expires)
	s.Recovery = models.SessionRecoveryToken(recovery)
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := execBuilt(ctx, r.db, sqlite.Delete(tableSessions).Where(sq.Eq{"token": token})); err != nil {
		r.logger.Err(err).Str("func", "sessionRepository.Delete").Msg("failed to delete session")
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, "sessionRepository.DeleteAll", sqlite.Delete(tableSessions))
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteWhere(ctx, "sessionRepository.DeleteExpired",
		sqlite.Delete(tableSessions).Where(sq.LtOrEq{"expires_at": now.UnixMilli()}))
}

func (r *sessionRepository) deleteWhere(ctx context.Context, fn string, b sq.DeleteBuilder) (int64, error) {
	res, err := execBuilt(ctx, r.db, b)
	if err != nil {
		r.logger.Err(err).Str("func", fn).Msg("failed to delete sessions")
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}

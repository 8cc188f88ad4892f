package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/models"
)

// profileRowID is the fixed primary key of the single profile row.
const profileRowID = 1

type profileRepository struct {
	db     DBTX
	logger *logger.Logger
}

func NewProfileRepository(db DBTX, log *logger.Logger) ProfileRepository {
	return &profileRepository{db: db, logger: log}
}

func (r *profileRepository) Get(ctx context.Context) (*models.Profile, error) {
	row, err := queryRowBuilt(ctx, r.db, sqlite.Select(profileColumns...).
		From(tableProfile).
		Where(sq.Eq{"id": profileRowID}))
	if err != nil {
		return nil, err
	}

	var p models.Profile
	err = row.Scan(&p.Name, &p.Gender, &p.Birthday, &p.ContactInfo, &p.Bio, &p.InstallationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Get").Msg("failed to scan profile row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return &p, nil
}

func (r *profileRepository) Save(ctx context.Context, p models.Profile) error {
	_, err := execBuilt(ctx, r.db, sqlite.Insert(tableProfile).
		Columns(append([]string{"id"}, profileColumns...)...).
		Values(profileRowID, p.Name, p.Gender, p.Birthday, p.ContactInfo, p.Bio, p.InstallationID).
		Suffix(upsertProfile))
	if err != nil {
		r.logger.Err(err).Str("func", "profileRepository.Save").Msg("failed to save profile")
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
	"github.com/MKhiriev/go-myself-vault/internal/validators"
	"github.com/MKhiriev/go-myself-vault/models"
)

type profileService struct {
	storage   store.Storage
	ids       utils.IDGenerator
	validator validators.Validator
	logger    *logger.Logger
}

func NewProfileService(storage store.Storage, ids utils.IDGenerator, log *logger.Logger) ProfileService {
	return &profileService{storage: storage, ids: ids, validator: validators.NewRecordValidator(), logger: log}
}

func (p *profileService) Get(ctx context.Context) (models.Profile, error) {
	profile, err := p.storage.Repositories().Profile.Get(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if profile != nil && profile.InstallationID != "" {
		return *profile, nil
	}

	if profile == nil {
		profile = &models.Profile{}
	}
	profile.InstallationID = p.ids.Generate()
	if err = p.storage.Repositories().Profile.Save(ctx, *profile); err != nil {
		p.logger.Err(err).Str("func", "profileService.Get").Msg("failed to create installation id")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}

	p.logger.Info().Str("func", "profileService.Get").Msg("installation id created")
	return *profile, nil
}

func (p *profileService) Update(ctx context.Context, profile models.Profile) (models.Profile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return models.Profile{}, ErrMissingIdentityAnchor
	}
	if err := p.validator.Validate(ctx, profile); err != nil {
		return models.Profile{}, err
	}

	current, err := p.Get(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	profile.InstallationID = current.InstallationID

	if err = p.storage.Repositories().Profile.Save(ctx, profile); err != nil {
		p.logger.Err(err).Str("func", "profileService.Update").Msg("failed to save profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}
	return profile, nil
}

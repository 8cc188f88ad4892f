// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/go-myself-vault/internal/card"
	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

const (
	exportFilePrefix     = "myself"
	exportFileExt        = ".zip"
	exportFileTimeLayout = "20060102-150405"
	fallbackFileName     = "profile"
)

type exportService struct {
	storage  store.Storage
	codec    pack.Codec
	renderer card.Renderer
	skipCard bool
	version  string
	now      func() time.Time
	logger   *logger.Logger
}

func NewExportService(storage store.Storage, codec pack.Codec, renderer card.Renderer, cfg config.StructuredConfig, log *logger.Logger) ExportService {
	return &exportService{
		storage:  storage,
		codec:    codec,
		renderer: renderer,
		skipCard: cfg.Export.SkipCard || renderer == nil,
		version:  cfg.App.Version,
		now:      time.Now,
		logger:   log,
	}
}

func (e *exportService) Export(ctx context.Context, u *vault.Unlocked, selection models.Selection, password string) (models.ExportResult, error) {
	if password == "" {
		return models.ExportResult{}, ErrEmptyPassword
	}

	profile, err := e.storage.Repositories().Profile.Get(ctx)
	if err != nil {
		return models.ExportResult{}, fmt.Errorf("get profile: %w", err)
	}
	if !profile.HasName() {
		return models.ExportResult{}, ErrMissingIdentityAnchor
	}

	now := e.now()
	dataset, err := e.collect(ctx, u, *profile, selection)
	if err != nil {
		return models.ExportResult{}, err
	}
	dataset.ExportedAt = now.UnixMilli()
	dataset.Version = e.version

	summary := Summarize(dataset)

	if err = ctx.Err(); err != nil {
		return models.ExportResult{}, err
	}

	pkg, err := e.codec.Build(dataset, password, e.renderCard(summary))
	if err != nil {
		e.logger.Err(err).Str("func", "exportService.Export").Msg("failed to build package")
		return models.ExportResult{}, fmt.Errorf("build package: %w", err)
	}

	e.logger.Info().
		Str("func", "exportService.Export").
		Int("tests", summary.TestCount).
		Int("diary", summary.DiaryCount).
		Int("contacts", summary.ContactCount).
		Int("bytes", len(pkg)).
		Msg("package built")

	return models.ExportResult{
		FileName: ExportFileName(profile.Name, now),
		Package:  pkg,
		Summary:  summary,
	}, nil
}

// collect reads the selected collections. A collection that was not
// selected stays nil so it is left out of the package.
func (e *exportService) collect(ctx context.Context, u *vault.Unlocked, profile models.Profile, selection models.Selection) (models.ExportDataset, error) {
	repos := e.storage.Repositories()
	var ds models.ExportDataset

	// the identity anchor always travels, even when the profile card does not
	if selection.Profile {
		ds.Profile = &profile
	} else {
		ds.Profile = &models.Profile{Name: profile.Name, InstallationID: profile.InstallationID}
	}

	if selection.WantsTests() {
		var types []string
		if !selection.AllTests {
			types = selection.TestTypes
		}
		tests, err := repos.Tests.List(ctx, types...)
		if err != nil {
			return models.ExportDataset{}, fmt.Errorf("list tests: %w", err)
		}
		ds.Tests = nonNil(tests)
	}

	if selection.Diary {
		records, err := repos.Diary.List(ctx)
		if err != nil {
			return models.ExportDataset{}, fmt.Errorf("list diary: %w", err)
		}
		diary, err := revealDiary(u, records)
		if err != nil {
			return models.ExportDataset{}, err
		}
		ds.Diary = diary
	}

	if selection.Contacts {
		contacts, err := repos.Contacts.List(ctx)
		if err != nil {
			return models.ExportDataset{}, fmt.Errorf("list contacts: %w", err)
		}
		ds.Contacts = nonNil(contacts)
	}

	return ds, nil
}

func (e *exportService) renderCard(summary models.CardSummary) []byte {
	if e.skipCard {
		return nil
	}
	img, err := e.renderer.Render(summary)
	if err != nil {
		// the card is cosmetic; export goes on without it
		e.logger.Warn().Err(err).Str("func", "exportService.renderCard").Msg("card rendering failed")
		return nil
	}
	return img
}

// Summarize extracts the counters the card renderer may see.
func Summarize(ds models.ExportDataset) models.CardSummary {
	s := models.CardSummary{
		TestCount:    len(ds.Tests),
		DiaryCount:   len(ds.Diary),
		ContactCount: len(ds.Contacts),
		ExportedAt:   ds.ExportedAt,
	}
	if ds.Profile != nil {
		s.Name = ds.Profile.Name
	}
	for _, t := range ds.Tests {
		if !slices.Contains(s.TestTypes, t.Type) {
			s.TestTypes = append(s.TestTypes, t.Type)
		}
	}
	return s
}

// ExportFileName returns myself-<name>-<yyyyMMdd-HHmmss>.zip with name
// reduced to letters, digits, '-' and '_'.
func ExportFileName(name string, at time.Time) string {
	return exportFilePrefix + "-" + sanitizeFileName(name) + "-" + at.Format(exportFileTimeLayout) + exportFileExt
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return fallbackFileName
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

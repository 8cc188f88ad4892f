// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/utils"
	"github.com/MKhiriev/go-myself-vault/internal/validators"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

type importService struct {
	storage   store.Storage
	codec     pack.Codec
	decider   Decider
	ids       utils.IDGenerator
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

// NewImportService returns an [ImportService]. decider may be nil, in which
// case every situation that needs a user choice fails with a sentinel error
// instead of blocking.
func NewImportService(storage store.Storage, codec pack.Codec, decider Decider, ids utils.IDGenerator, log *logger.Logger) ImportService {
	return &importService{
		storage:   storage,
		codec:     codec,
		decider:   decider,
		ids:       ids,
		validator: validators.NewRecordValidator(),
		now:       time.Now,
		logger:    log,
	}
}

func (s *importService) Read(data []byte) (pack.Parsed, error) {
	parsed, err := s.codec.Parse(data)
	if err != nil {
		return pack.Parsed{}, fmt.Errorf("parse package: %w", err)
	}
	return parsed, nil
}

func (s *importService) Preview(ctx context.Context, req ImportRequest) (models.ImportPreview, error) {
	parsed, dataset, err := s.open(req)
	if err != nil {
		return models.ImportPreview{}, err
	}

	preview := models.ImportPreview{
		Format:     parsed.Format.String(),
		Signed:     parsed.Signed(),
		Version:    dataset.Version,
		ExportedAt: dataset.ExportedAt,
		Tests:      len(dataset.Tests),
		Diary:      len(dataset.Diary),
		Contacts:   len(dataset.Contacts),
	}
	if dataset.Profile != nil {
		preview.ProfileName = dataset.Profile.Name
	}
	return preview, nil
}

func (s *importService) Import(ctx context.Context, u *vault.Unlocked, req ImportRequest) (models.ImportOutcome, error) {
	if req.Mode != models.ImportModeSelf && req.Mode != models.ImportModeContact {
		return models.ImportOutcome{}, ErrUnknownImportMode
	}

	parsed, dataset, err := s.open(req)
	if err != nil {
		return models.ImportOutcome{}, err
	}
	if !dataset.Profile.HasName() {
		return models.ImportOutcome{}, ErrMissingIdentityAnchor
	}
	if err = s.validator.Validate(ctx, dataset); err != nil {
		return models.ImportOutcome{}, fmt.Errorf("%w: %w", pack.ErrInvalidFormat, err)
	}
	dataset.Profile.Name = strings.TrimSpace(dataset.Profile.Name)

	outcome := models.ImportOutcome{
		Format: parsed.Format.String(),
		Signed: parsed.Signed(),
	}
	log := s.logger.With().
		Str("func", "importService.Import").
		Str("mode", req.Mode.String()).
		Str("format", outcome.Format).
		Logger()

	local, err := s.readLocal(ctx)
	if err != nil {
		return models.ImportOutcome{}, err
	}

	who := classifyIdentity(local, *dataset.Profile)
	selfPath := req.Mode == models.ImportModeSelf
	switch {
	case selfPath && !who.same:
		log.Info().Msg("self restore rejected: package belongs to someone else")
		return models.ImportOutcome{}, ErrIdentityMismatch
	case !selfPath && who.same && !who.restore:
		redirect, err := s.askRedirect(ctx, *dataset.Profile)
		if err != nil {
			return models.ImportOutcome{}, err
		}
		if !redirect {
			return models.ImportOutcome{}, ErrImportCancelled
		}
		selfPath = true
	}

	if selfPath {
		err = s.importSelf(ctx, u, local, dataset, who, &outcome)
	} else {
		err = s.importContact(ctx, dataset, req.Remark, &outcome)
	}
	if err != nil {
		return models.ImportOutcome{}, err
	}

	log.Info().
		Str("path", string(outcome.Path)).
		Str("resolution", outcome.Resolution).
		Bool("signed", outcome.Signed).
		Int("tests_added", outcome.TestsAdded).
		Int("diary_added", outcome.DiaryAdded).
		Msg("package imported")
	return outcome, nil
}

func (s *importService) open(req ImportRequest) (pack.Parsed, models.ExportDataset, error) {
	var parsed pack.Parsed
	if req.Parsed != nil {
		parsed = *req.Parsed
	} else {
		var err error
		if parsed, err = s.Read(req.Package); err != nil {
			return pack.Parsed{}, models.ExportDataset{}, err
		}
	}
	dataset, err := s.codec.Open(parsed, req.Password)
	if err != nil {
		return pack.Parsed{}, models.ExportDataset{}, fmt.Errorf("open package: %w", err)
	}
	return parsed, dataset, nil
}

func (s *importService) readLocal(ctx context.Context) (localState, error) {
	repos := s.storage.Repositories()
	var local localState

	profile, err := repos.Profile.Get(ctx)
	if err != nil {
		return localState{}, fmt.Errorf("get profile: %w", err)
	}
	if profile != nil {
		local.profile = *profile
	}
	if local.tests, err = repos.Tests.List(ctx); err != nil {
		return localState{}, fmt.Errorf("list tests: %w", err)
	}
	if local.diary, err = repos.Diary.List(ctx); err != nil {
		return localState{}, fmt.Errorf("list diary: %w", err)
	}
	if local.contacts, err = repos.Contacts.List(ctx); err != nil {
		return localState{}, fmt.Errorf("list contacts: %w", err)
	}
	return local, nil
}

func (s *importService) importSelf(ctx context.Context, u *vault.Unlocked, local localState, dataset models.ExportDataset, who identity, outcome *models.ImportOutcome) error {
	outcome.Path = models.PathSelf

	resolution := models.SelfSmartMerge
	report := DetectConflicts(local.profile, len(local.tests), len(local.diary), dataset)
	if report.HasConflicts() {
		var err error
		if resolution, err = s.askSelfConflict(ctx, report); err != nil {
			return err
		}
	}
	outcome.Resolution = resolution.String()

	var plan selfPlan
	switch resolution {
	case models.SelfSmartMerge:
		plan = smartMerge(local, dataset, who)
	case models.SelfOverwrite:
		plan = overwrite(local, dataset, who)
	default:
		return ErrImportCancelled
	}
	s.fillIDs(&plan)
	if err := s.resolveRestoredContacts(ctx, local.contacts, &plan); err != nil {
		return err
	}

	diary, err := sealDiary(u, plan.diary)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	err = s.storage.WithTx(ctx, func(ctx context.Context, tx *store.Repositories) error {
		if plan.replaceTests {
			if err := tx.Tests.DeleteAll(ctx); err != nil {
				return err
			}
		}
		if plan.replaceDiary {
			if err := tx.Diary.DeleteAll(ctx); err != nil {
				return err
			}
		}
		if err := tx.Tests.Insert(ctx, plan.tests...); err != nil {
			return err
		}
		if err := tx.Diary.Insert(ctx, diary...); err != nil {
			return err
		}
		for _, c := range plan.contacts {
			if err := tx.Contacts.Insert(ctx, c); err != nil {
				return err
			}
		}
		for _, c := range plan.replacedContacts {
			if err := tx.Contacts.Replace(ctx, c); err != nil {
				return err
			}
		}
		return tx.Profile.Save(ctx, plan.profile)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "importService.importSelf").Msg("failed to write self restore")
		return fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}

	outcome.TestsAdded = len(plan.tests)
	outcome.DiaryAdded = len(plan.diary)
	outcome.ProfileSet = plan.profileSet
	return nil
}

func (s *importService) importContact(ctx context.Context, dataset models.ExportDataset, remark string, outcome *models.ImportOutcome) error {
	outcome.Path = models.PathContact
	outcome.ContactName = dataset.Profile.Name

	existing, err := s.storage.Repositories().Contacts.FindByName(ctx, dataset.Profile.Name)
	if err != nil {
		return fmt.Errorf("find contacts by name: %w", err)
	}

	snapshot := models.ContactSnapshot{
		Name:          dataset.Profile.Name,
		Remark:        strings.TrimSpace(remark),
		Tests:         nonNil(dataset.Tests),
		Diary:         nonNil(dataset.Diary),
		Profile:       dataset.Profile,
		ImportedAt:    s.now().UnixMilli(),
		SourceVersion: dataset.Version,
	}

	action := models.CollisionAddNew
	if len(existing) > 0 {
		res, err := s.askCollision(ctx, *dataset.Profile, existing)
		if err != nil {
			return err
		}
		action = res.Action

		switch res.Action {
		case models.CollisionOverwrite:
			target, ok := findContact(existing, res.TargetID)
			if !ok {
				return ErrContactNotFound
			}
			snapshot.ID = target.ID
			snapshot.Remark = target.Remark
		case models.CollisionAddNew:
			snapshot.Remark = strings.TrimSpace(res.Remark)
			if snapshot.Remark == "" {
				return ErrRemarkRequired
			}
		default:
			return ErrImportCancelled
		}
	}
	if snapshot.ID == "" {
		snapshot.ID = s.ids.Generate()
	}
	outcome.Resolution = action.String()

	if err = ctx.Err(); err != nil {
		return err
	}

	err = s.storage.WithTx(ctx, func(ctx context.Context, tx *store.Repositories) error {
		if action == models.CollisionOverwrite {
			return tx.Contacts.Replace(ctx, snapshot)
		}
		return tx.Contacts.Insert(ctx, snapshot)
	})
	if err != nil {
		s.logger.Err(err).Str("func", "importService.importContact").Msg("failed to write contact")
		return fmt.Errorf("%w: %w", ErrStorageWriteFailure, err)
	}

	outcome.ContactID = snapshot.ID
	outcome.TestsAdded = len(snapshot.Tests)
	outcome.DiaryAdded = len(snapshot.Diary)
	return nil
}

// resolveRestoredContacts makes every restored contact distinguishable from
// the contacts sharing its name. An indistinguishable one goes through the
// same collision decision as a contact import.
func (s *importService) resolveRestoredContacts(ctx context.Context, local []models.ContactSnapshot, plan *selfPlan) error {
	stored := make(map[string]struct{}, len(local))
	for _, c := range local {
		stored[c.ID] = struct{}{}
	}

	known := append([]models.ContactSnapshot(nil), local...)
	var added []models.ContactSnapshot
	for _, c := range plan.contacts {
		clashes := indistinguishable(known, c)
		if len(clashes) == 0 {
			known = append(known, c)
			added = append(added, c)
			continue
		}

		incoming := models.Profile{Name: c.Name}
		if c.Profile != nil {
			incoming = *c.Profile
			incoming.Name = c.Name
		}
		res, err := s.askCollision(ctx, incoming, clashes)
		if err != nil {
			return err
		}

		switch res.Action {
		case models.CollisionAddNew:
			c.Remark = strings.TrimSpace(res.Remark)
			if c.Remark == "" {
				return ErrRemarkRequired
			}
			known = append(known, c)
			added = append(added, c)
		case models.CollisionOverwrite:
			target, ok := findContact(clashes, res.TargetID)
			if !ok {
				return ErrContactNotFound
			}
			c.ID, c.Remark = target.ID, target.Remark
			if _, ok := stored[target.ID]; ok {
				plan.replacedContacts = append(plan.replacedContacts, c)
				continue
			}
			for i := range added {
				if added[i].ID == target.ID {
					added[i] = c
				}
			}
		default:
			return ErrImportCancelled
		}
	}
	plan.contacts = added
	return nil
}

// fillIDs gives every id-less incoming record a fresh id.
func (s *importService) fillIDs(plan *selfPlan) {
	for i := range plan.tests {
		if plan.tests[i].ID == "" {
			plan.tests[i].ID = s.ids.Generate()
		}
	}
	for i := range plan.diary {
		if plan.diary[i].ID == "" {
			plan.diary[i].ID = s.ids.Generate()
		}
	}
	for i := range plan.contacts {
		if plan.contacts[i].ID == "" {
			plan.contacts[i].ID = s.ids.Generate()
		}
	}
}

func (s *importService) askRedirect(ctx context.Context, incoming models.Profile) (bool, error) {
	if s.decider == nil {
		return false, ErrImportCancelled
	}
	redirect, err := s.decider.RedirectToSelf(ctx, incoming)
	if err != nil {
		return false, decisionError(err)
	}
	return redirect, nil
}

func (s *importService) askSelfConflict(ctx context.Context, report models.ConflictReport) (models.SelfResolution, error) {
	if s.decider == nil {
		return models.SelfCancel, ErrSelfConflict
	}
	res, err := s.decider.ResolveSelfConflict(ctx, report)
	if err != nil {
		return models.SelfCancel, decisionError(err)
	}
	return res, nil
}

func (s *importService) askCollision(ctx context.Context, incoming models.Profile, existing []models.ContactSnapshot) (models.CollisionResolution, error) {
	if s.decider == nil {
		return models.CollisionResolution{}, ErrNameCollision
	}
	res, err := s.decider.ResolveNameCollision(ctx, incoming, existing)
	if err != nil {
		return models.CollisionResolution{}, decisionError(err)
	}
	return res, nil
}

// decisionError reports an aborted prompt as a cancellation.
func decisionError(err error) error {
	return fmt.Errorf("%w: %w", ErrImportCancelled, err)
}

func findContact(contacts []models.ContactSnapshot, id string) (models.ContactSnapshot, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return models.ContactSnapshot{}, false
}

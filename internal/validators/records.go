// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-myself-vault/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldType targets the quiz type of a test record.
	FieldType = "type"

	// FieldResult targets the opaque JSON result of a test record.
	FieldResult = "result"

	// FieldContent targets the text of a diary entry.
	FieldContent = "content"

	// FieldTimestamps targets the millisecond timestamps of a record.
	FieldTimestamps = "timestamps"

	// FieldBirthday targets the birthday of a profile.
	FieldBirthday = "birthday"

	// FieldLengths targets the length limits of free-form profile text.
	FieldLengths = "lengths"

	// FieldName targets the name of a contact.
	FieldName = "name"

	// FieldTests targets every test record of a dataset.
	FieldTests = "tests"

	// FieldContacts targets every contact of a dataset.
	FieldContacts = "contacts"
)

const (
	birthdayLayout = "2006-01-02"
	maxTextRunes   = 4096
)

// RecordValidator implements Validator for the records a user creates or
// imports: TestRecord, DiaryEntry, Profile, ContactSnapshot and ExportDataset.
// Both value and pointer forms are accepted.
type RecordValidator struct {
}

// NewRecordValidator returns a RecordValidator as a Validator.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the type-specific method.
// Returns ErrUnsupportedType for any other type.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TestRecord:
		return v.validateTest(ctx, value, fields...)
	case *models.TestRecord:
		return v.validateTest(ctx, *value, fields...)

	case models.DiaryEntry:
		return v.validateDiary(ctx, value, fields...)
	case *models.DiaryEntry:
		return v.validateDiary(ctx, *value, fields...)

	case models.Profile:
		return v.validateProfile(ctx, value, fields...)
	case *models.Profile:
		return v.validateProfile(ctx, *value, fields...)

	case models.ContactSnapshot:
		return v.validateContact(ctx, value, fields...)
	case *models.ContactSnapshot:
		return v.validateContact(ctx, *value, fields...)

	case models.ExportDataset:
		return v.validateDataset(ctx, value, fields...)
	case *models.ExportDataset:
		return v.validateDataset(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateTest(_ context.Context, record models.TestRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldResult, FieldTimestamps}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if strings.TrimSpace(record.Type) == "" {
				return ErrEmptyTestType
			}
		case FieldResult:
			if len(record.Result) > 0 && !json.Valid(record.Result) {
				return ErrInvalidTestResult
			}
		case FieldTimestamps:
			if record.CompletedAt < 0 {
				return ErrNegativeTimestamp
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateDiary(_ context.Context, entry models.DiaryEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldTimestamps}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if strings.TrimSpace(entry.Content) == "" {
				return ErrEmptyDiaryContent
			}
		case FieldTimestamps:
			if entry.CreatedAt < 0 || entry.UpdatedAt < 0 {
				return ErrNegativeTimestamp
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateProfile(_ context.Context, profile models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBirthday, FieldLengths}
	}

	for _, f := range fields {
		switch f {
		case FieldBirthday:
			if profile.Birthday == "" {
				continue
			}
			if _, err := time.Parse(birthdayLayout, profile.Birthday); err != nil {
				return ErrInvalidBirthday
			}
		case FieldLengths:
			for _, s := range []string{profile.Name, profile.Gender, profile.ContactInfo, profile.Bio} {
				if utf8.RuneCountInString(s) > maxTextRunes {
					return ErrFieldTooLong
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateContact(_ context.Context, contact models.ContactSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(contact.Name) == "" {
				return ErrEmptyContactName
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateDataset checks the collections of an incoming package. The
// profile is left to the caller and diary entries are not checked because
// older packages may carry empty notes.
func (v *RecordValidator) validateDataset(ctx context.Context, dataset models.ExportDataset, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTests, FieldContacts}
	}

	for _, f := range fields {
		switch f {
		case FieldTests:
			for i, record := range dataset.Tests {
				if err := v.validateTest(ctx, record, FieldType, FieldResult); err != nil {
					return fmt.Errorf("test at index %d: %w", i, err)
				}
			}
		case FieldContacts:
			for i, contact := range dataset.Contacts {
				if err := v.validateContact(ctx, contact); err != nil {
					return fmt.Errorf("contact at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

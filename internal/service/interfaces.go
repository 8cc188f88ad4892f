package service

import (
	"context"

	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ProfileService manages the single local profile.
type ProfileService interface {
	// Get returns the local profile. The first call creates an empty
	// profile carrying a fresh installation id.
	Get(ctx context.Context) (models.Profile, error)

	// Update stores the editable fields of profile. The installation id is
	// never taken from the argument.
	Update(ctx context.Context, profile models.Profile) (models.Profile, error)
}

// RecordService stores test results and diary entries produced locally.
type RecordService interface {
	AddTest(ctx context.Context, record models.TestRecord) (models.TestRecord, error)
	ListTests(ctx context.Context, types ...string) ([]models.TestRecord, error)

	// AddDiary encrypts the entry content with u before it is stored.
	AddDiary(ctx context.Context, u *vault.Unlocked, entry models.DiaryEntry) (models.DiaryEntry, error)
	ListDiary(ctx context.Context, u *vault.Unlocked) ([]models.DiaryEntry, error)

	// ImportLegacyDiary loads a JSON array of diary records written with the
	// content/content_encrypted sibling convention. Plaintext content is
	// encrypted on the way in; already encrypted content is kept as is.
	ImportLegacyDiary(ctx context.Context, u *vault.Unlocked, raw []byte) (int, error)
}

// ExportService packs a selection of local data into an export package.
type ExportService interface {
	// Export never writes to storage. The diary is decrypted with u.
	Export(ctx context.Context, u *vault.Unlocked, selection models.Selection, password string) (models.ExportResult, error)
}

// ImportRequest carries an incoming package and the password to open it.
type ImportRequest struct {
	Package []byte
	// Parsed is Package as returned by [ImportService.Read]. When set,
	// Package is not read again.
	Parsed   *pack.Parsed
	Password string
	Mode     models.ImportMode
	// Remark is stored with a contact added without a name collision.
	Remark string
}

// ImportService reconciles an export package with local data.
type ImportService interface {
	// Read validates the layout of a package file without decrypting it.
	Read(data []byte) (pack.Parsed, error)

	// Preview opens the package and describes it without touching storage.
	Preview(ctx context.Context, req ImportRequest) (models.ImportPreview, error)

	// Import applies the package. Nothing is written unless every decision
	// has been taken, and then everything is written in one transaction.
	Import(ctx context.Context, u *vault.Unlocked, req ImportRequest) (models.ImportOutcome, error)
}

// ContactService is the registry of imported contact snapshots.
type ContactService interface {
	Add(ctx context.Context, contact models.ContactSnapshot) (models.ContactSnapshot, error)
	Get(ctx context.Context, id string) (models.ContactSnapshot, error)
	List(ctx context.Context) ([]models.ContactSnapshot, error)
	FindByName(ctx context.Context, name string) ([]models.ContactSnapshot, error)

	// Replace swaps the whole snapshot of an existing contact. Only the id
	// and the remark of the old snapshot survive: the remark is what tells
	// contacts sharing a name apart.
	Replace(ctx context.Context, contact models.ContactSnapshot) error
	UpdateRemark(ctx context.Context, id, remark string) error

	// Delete removes the contact for good. It refuses to run unless the
	// caller confirmed the deletion with the user.
	Delete(ctx context.Context, id string, confirmed bool) error
}

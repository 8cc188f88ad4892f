package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SettingsRepository is a key/value table for installation-wide values such
// as the vault salt and the password canary.
type SettingsRepository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProfileRepository stores the single local profile.
type ProfileRepository interface {
	// Get returns (nil, nil) before a profile was saved.
	Get(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, profile models.Profile) error
}

// TestRepository stores the local test results.
type TestRepository interface {
	// List returns tests ordered by completion time. Non-empty types
	// restricts the result to those test types.
	List(ctx context.Context, types ...string) ([]models.TestRecord, error)
	Insert(ctx context.Context, records ...models.TestRecord) error
	DeleteAll(ctx context.Context) error
}

// DiaryRepository stores diary entries with the content column kept in its
// on-disk form (plaintext or field-encrypted).
type DiaryRepository interface {
	List(ctx context.Context) ([]DiaryRecord, error)
	Insert(ctx context.Context, records ...DiaryRecord) error
	DeleteAll(ctx context.Context) error
}

// ContactRepository stores imported contact snapshots keyed by id.
type ContactRepository interface {
	Insert(ctx context.Context, contact models.ContactSnapshot) error
	Get(ctx context.Context, id string) (models.ContactSnapshot, error)
	List(ctx context.Context) ([]models.ContactSnapshot, error)
	FindByName(ctx context.Context, name string) ([]models.ContactSnapshot, error)
	Replace(ctx context.Context, contact models.ContactSnapshot) error
	UpdateRemark(ctx context.Context, id, remark string) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository stores remembered sessions.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	// Latest returns the most recently created session, or (nil, nil).
	Latest(ctx context.Context) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Storage gives access to the repositories, either directly or bound to a
// single transaction.
type Storage interface {
	Repositories() *Repositories
	WithTx(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error
}

package session

import (
	"context"

	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Manager opens, resumes and destroys unlock sessions.
type Manager interface {
	// Start unlocks the vault with password and records a session. A
	// remembered session is persisted and lasts the long TTL.
	Start(ctx context.Context, password string, remember bool) (models.Session, *vault.Unlocked, error)

	// Resume finds the newest session, checks it and unlocks the vault
	// with its recovery token. Expired or invalid sessions are destroyed.
	Resume(ctx context.Context) (models.Session, *vault.Unlocked, error)

	// Logout destroys the newest session.
	Logout(ctx context.Context) error

	// Clear destroys every session.
	Clear(ctx context.Context) error

	// PurgeExpired destroys expired sessions and reports how many.
	PurgeExpired(ctx context.Context) (int, error)
}

// ProfileSource yields the local profile; only its installation id is used.
type ProfileSource interface {
	Get(ctx context.Context) (models.Profile, error)
}

package vault

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_mock.go -package=mock

// Vault manages the installation password.
type Vault interface {
	// IsInitialized reports whether a password canary exists.
	IsInitialized(ctx context.Context) (bool, error)

	// SetPassword sets the first password. It reuses the installation salt
	// if one exists, writes the canary and returns an unlocked handle.
	SetPassword(ctx context.Context, password string) (*Unlocked, error)

	// VerifyPassword checks password against the canary. It never fails;
	// any problem reads as false.
	VerifyPassword(ctx context.Context, password string) bool

	// Unlock verifies password and returns a handle with the derived keys.
	Unlock(ctx context.Context, password string) (*Unlocked, error)

	// ChangePassword re-encrypts every encrypted field and the canary under
	// newPassword in one transaction. Stored sessions are dropped because
	// they carry the old password.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (*Unlocked, error)
}

package service

import (
	"context"

	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=decider.go -destination=../mock/decider_mock.go -package=mock

// Decider supplies the choices the import reconciler cannot make on its
// own. Each call blocks until the user answers or ctx is done; there is no
// timeout.
type Decider interface {
	// RedirectToSelf is asked when a package imported as a contact turns
	// out to belong to the local user.
	RedirectToSelf(ctx context.Context, incoming models.Profile) (bool, error)

	// ResolveSelfConflict is asked when a self restore differs from local data.
	ResolveSelfConflict(ctx context.Context, report models.ConflictReport) (models.SelfResolution, error)

	// ResolveNameCollision is asked when contacts with the incoming name
	// already exist.
	ResolveNameCollision(ctx context.Context, incoming models.Profile, existing []models.ContactSnapshot) (models.CollisionResolution, error)
}

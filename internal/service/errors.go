package service

import "errors"

var (
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrMissingIdentityAnchor means a profile has no name: export refuses
	// to run and import cannot classify the package.
	ErrMissingIdentityAnchor = errors.New("profile name is not set")

	// ErrIdentityMismatch is returned when a self restore is attempted with
	// another person's package. Import it as a contact instead.
	ErrIdentityMismatch = errors.New("package belongs to someone else")

	ErrImportCancelled   = errors.New("import cancelled")
	ErrUnknownImportMode = errors.New("unknown import mode")

	// ErrSelfConflict and ErrNameCollision are only returned when no Decider
	// is configured to ask the user.
	ErrSelfConflict  = errors.New("local data conflicts with the package")
	ErrNameCollision = errors.New("a contact with this name already exists")

	ErrRemarkRequired      = errors.New("a remark is required to tell contacts with the same name apart")
	ErrStorageWriteFailure = errors.New("storage write failed")

	ErrContactNotFound    = errors.New("contact not found")
	ErrDeleteNotConfirmed = errors.New("deletion was not confirmed")
	ErrInvalidLegacyDiary = errors.New("invalid legacy diary data")
)

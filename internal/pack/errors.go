package pack

import "errors"

var (
	// ErrInvalidFormat is returned for foreign files, malformed containers and
	// unknown manifest format tags. Retrying with the same file cannot help.
	ErrInvalidFormat = errors.New("invalid package format")

	// ErrEmptyPassword is returned when a signed package is opened without a password.
	ErrEmptyPassword = errors.New("password is required to open this package")
)

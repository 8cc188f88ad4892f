package session

import "errors"

var (
	ErrSessionNotFound = errors.New("no active session")
	ErrSessionExpired  = errors.New("session expired")
	// ErrSessionInvalid covers tokens that fail validation, sessions of
	// another installation and sessions whose password no longer unlocks
	// the vault. Such sessions are destroyed.
	ErrSessionInvalid = errors.New("session is no longer valid")
)

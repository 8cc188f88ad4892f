package vault

import "errors"

var (
	ErrEmptyPassword      = errors.New("password is empty")
	ErrPasswordNotSet     = errors.New("vault password has not been set")
	ErrAlreadyInitialized = errors.New("vault password is already set")
	ErrWrongPassword      = errors.New("wrong password")
	// ErrLocked is returned by a handle after Lock and by encrypted fields
	// revealed without a handle.
	ErrLocked = errors.New("vault is locked")
	// ErrInvalidCiphertext is returned for an encrypted field whose stored
	// value is not valid base64.
	ErrInvalidCiphertext = errors.New("invalid field ciphertext")
)

package crypto

import "errors"

var (
	// ErrTamperedOrWrongPassword is returned when the envelope signature does
	// not verify. Tampering and a mistyped password are indistinguishable
	// here and callers must not try to tell them apart.
	ErrTamperedOrWrongPassword = errors.New("signature verification failed: data tampered or wrong password")

	// ErrCorruptPayload is returned when the signature is valid but the
	// ciphertext cannot be decrypted. It is fatal for the input.
	ErrCorruptPayload = errors.New("payload is corrupt")

	// ErrInvalidSalt is returned when a salt of the wrong size is supplied.
	ErrInvalidSalt = errors.New("invalid salt size")

	// ErrInvalidKeys is returned when Seal or Open get incomplete key material.
	ErrInvalidKeys = errors.New("invalid key material")
)

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a session JWT with convenience accessors.
//
// It embeds [jwt.Token] for low-level operations and
// [jwt.RegisteredClaims] for standard claim access. The subject claim holds
// the installation id the session was opened for.
type Token struct {
	// Token is the parsed JWT. Excluded from JSON; only the compact form
	// is meaningful outside the process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation (header.payload.signature).
	SignedString string `json:"-"`

	// InstallationID is a cached copy of the "sub" claim.
	InstallationID string `json:"-"`
}

// GetInstallationID extracts the installation id from the "sub" claim.
//
// Returns an error if the claim is missing or empty.
func (t *Token) GetInstallationID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting installation id from token: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("empty subject in token")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

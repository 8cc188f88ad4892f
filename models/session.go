// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"time"
)

// Session is an unlocked period of use.
//
// A remembered session lives in the local database and survives restarts;
// a non-remembered one lives only in process memory.
type Session struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	// SaltRef is the base64 of the installation salt the session was opened with.
	SaltRef  string
	Recovery SessionRecoveryToken
	Remember bool
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRecoveryToken is a reversibly obfuscated password kept with a session
// so the vault can be re-unlocked silently on resume.
//
// LOW ASSURANCE: this is base64 over the reversed password. It hides the
// password from a casual glance at the database and nothing more. It is a UX
// convenience, not an encryption key.
type SessionRecoveryToken string

// NewSessionRecoveryToken obfuscates password.
func NewSessionRecoveryToken(password string) SessionRecoveryToken {
	return SessionRecoveryToken(base64.StdEncoding.EncodeToString([]byte(reverse(password))))
}

// Reveal returns the original password.
func (t SessionRecoveryToken) Reveal() (string, error) {
	raw, err := base64.StdEncoding.DecodeString(string(t))
	if err != nil {
		return "", err
	}
	return reverse(string(raw)), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

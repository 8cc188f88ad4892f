// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the size of the installation salt and of the salt embedded
	// in every envelope.
	SaltSize = 16
	// KeySize is the size of both derived keys (256 bits).
	KeySize = 32
	// KDFIterations is the minimum PBKDF2 iteration count.
	KDFIterations = 100_000
)

// Keys is the key material derived from one password and one salt.
// It lives only in memory; call Wipe when done.
type Keys struct {
	EncryptKey []byte
	HMACKey    []byte
	Salt       []byte
}

// Wipe zeroes the key bytes. The salt is not secret and is left intact.
func (k *Keys) Wipe() {
	Zero(k.EncryptKey)
	Zero(k.HMACKey)
}

func (k Keys) valid() bool {
	return len(k.EncryptKey) == KeySize && len(k.HMACKey) == KeySize && len(k.Salt) == SaltSize
}

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	iterations int
}

// NewKeyChain constructs a [KeyChain] using PBKDF2-HMAC-SHA256 with the
// given iteration count. Counts below [KDFIterations] are raised to it.
func NewKeyChain(iterations int) KeyChain {
	if iterations < KDFIterations {
		iterations = KDFIterations
	}
	return &keyChain{iterations: iterations}
}

// GenerateSalt reads SaltSize random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// SigningSalt returns salt with every byte XORed with 0xFF.
func SigningSalt(salt []byte) []byte {
	out := make([]byte, len(salt))
	for i, b := range salt {
		out[i] = b ^ 0xFF
	}
	return out
}

// DeriveKeys implements [KeyChain].
func (k *keyChain) DeriveKeys(password string, salt []byte) (Keys, error) {
	if salt == nil {
		var err error
		if salt, err = GenerateSalt(); err != nil {
			return Keys{}, err
		}
	}
	if len(salt) != SaltSize {
		return Keys{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidSalt, len(salt), SaltSize)
	}

	own := make([]byte, SaltSize)
	copy(own, salt)

	return Keys{
		EncryptKey: pbkdf2.Key([]byte(password), own, k.iterations, KeySize, sha256.New),
		HMACKey:    pbkdf2.Key([]byte(password), SigningSalt(own), k.iterations, KeySize, sha256.New),
		Salt:       own,
	}, nil
}

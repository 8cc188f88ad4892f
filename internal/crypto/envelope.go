// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

const (
	// SignatureSize is the size of the HMAC-SHA256 envelope signature.
	SignatureSize = sha256.Size
	// IVSize is the AES-GCM nonce size.
	IVSize = 12
	// HeaderSize is the fixed prefix of every envelope before the ciphertext.
	HeaderSize = SignatureSize + SaltSize + IVSize
)

// envelope is a parsed, not yet verified envelope. All slices alias the
// input buffer.
type envelope struct {
	signature  []byte
	salt       []byte
	iv         []byte
	ciphertext []byte
	signed     []byte // salt ‖ iv ‖ ciphertext
}

func splitEnvelope(data []byte) (envelope, bool) {
	if len(data) < HeaderSize {
		return envelope{}, false
	}
	return envelope{
		signature:  data[:SignatureSize],
		salt:       data[SignatureSize : SignatureSize+SaltSize],
		iv:         data[SignatureSize+SaltSize : HeaderSize],
		ciphertext: data[HeaderSize:],
		signed:     data[SignatureSize:],
	}, true
}

// Encrypt implements [KeyChain].
func (k *keyChain) Encrypt(plaintext []byte, password string) ([]byte, error) {
	keys, err := k.DeriveKeys(password, nil)
	if err != nil {
		return nil, err
	}
	defer keys.Wipe()

	return k.Seal(plaintext, keys)
}

// Decrypt implements [KeyChain].
func (k *keyChain) Decrypt(data []byte, password string) ([]byte, error) {
	env, ok := splitEnvelope(data)
	if !ok {
		return nil, ErrTamperedOrWrongPassword
	}

	keys, err := k.DeriveKeys(password, env.salt)
	if err != nil {
		return nil, err
	}
	defer keys.Wipe()

	return openEnvelope(env, keys)
}

// Seal implements [KeyChain]. A fresh random IV is generated per call.
func (k *keyChain) Seal(plaintext []byte, keys Keys) ([]byte, error) {
	if !keys.valid() {
		return nil, ErrInvalidKeys
	}

	gcm, err := newGCM(keys.EncryptKey)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, IVSize)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	out := make([]byte, HeaderSize, HeaderSize+len(plaintext)+gcm.Overhead())
	copy(out[SignatureSize:], keys.Salt)
	copy(out[SignatureSize+SaltSize:], iv)
	out = gcm.Seal(out, iv, plaintext, nil)

	copy(out[:SignatureSize], sign(keys.HMACKey, out[SignatureSize:]))
	return out, nil
}

// Open implements [KeyChain].
func (k *keyChain) Open(data []byte, keys Keys) ([]byte, error) {
	if !keys.valid() {
		return nil, ErrInvalidKeys
	}
	env, ok := splitEnvelope(data)
	if !ok {
		return nil, ErrTamperedOrWrongPassword
	}
	if !hmac.Equal(env.salt, keys.Salt) {
		return nil, ErrTamperedOrWrongPassword
	}
	return openEnvelope(env, keys)
}

// openEnvelope verifies the signature and decrypts. The order is fixed:
// nothing is handed to AES-GCM before the signature matches.
func openEnvelope(env envelope, keys Keys) ([]byte, error) {
	if !hmac.Equal(env.signature, sign(keys.HMACKey, env.signed)) {
		return nil, ErrTamperedOrWrongPassword
	}

	gcm, err := newGCM(keys.EncryptKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, env.iv, env.ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return plaintext, nil
}

func sign(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

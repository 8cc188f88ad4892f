// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pack

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/compress"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=codec.go -destination=../mock/pack_codec_mock.go -package=mock

// Codec builds and opens export packages.
type Codec interface {
	// Build serializes dataset to JSON, compresses it, encrypts it with
	// password and writes the container. card is optional and cosmetic.
	// Either a complete package is returned or nothing.
	Build(dataset models.ExportDataset, password string, card []byte) ([]byte, error)

	// Parse validates the package structure without decrypting anything.
	// Unknown layouts and unknown manifest tags fail with ErrInvalidFormat.
	Parse(data []byte) (Parsed, error)

	// Open decrypts (signed formats only), decompresses and decodes the
	// payload of a parsed package.
	Open(parsed Parsed, password string) (models.ExportDataset, error)
}

type codec struct {
	keyChain crypto.KeyChain
}

// NewCodec returns a [Codec] encrypting with keyChain.
func NewCodec(keyChain crypto.KeyChain) Codec {
	return &codec{keyChain: keyChain}
}

// Build implements [Codec].
func (c *codec) Build(dataset models.ExportDataset, password string, card []byte) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	plain, err := json.Marshal(dataset)
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}

	packed, err := compress.Compress(plain)
	if err != nil {
		return nil, err
	}

	envelope, err := c.keyChain.Encrypt(packed, password)
	if err != nil {
		return nil, fmt.Errorf("encrypt dataset: %w", err)
	}

	return buildContainer(Manifest{
		Version:    dataset.Version,
		Format:     FormatTag,
		ExportedAt: dataset.ExportedAt,
	}, envelope, card)
}

// Parse implements [Codec].
func (c *codec) Parse(data []byte) (Parsed, error) {
	return dispatch(data)
}

// Open implements [Codec].
func (c *codec) Open(parsed Parsed, password string) (models.ExportDataset, error) {
	packed := parsed.Blob
	if parsed.Signed() {
		if password == "" {
			return models.ExportDataset{}, ErrEmptyPassword
		}
		var err error
		if packed, err = c.keyChain.Decrypt(parsed.Blob, password); err != nil {
			return models.ExportDataset{}, err
		}
	}

	plain, ok := compress.Decompress(packed)
	if !ok {
		return models.ExportDataset{}, fmt.Errorf("%w: payload is not valid compressed data", crypto.ErrCorruptPayload)
	}

	var dataset models.ExportDataset
	if err := json.Unmarshal(plain, &dataset); err != nil {
		return models.ExportDataset{}, fmt.Errorf("%w: decode dataset: %v", crypto.ErrCorruptPayload, err)
	}

	return dataset, nil
}

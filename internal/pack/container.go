// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const (
	maxManifestSize = 64 << 10
	maxPayloadSize  = 128 << 20
)

func buildContainer(m Manifest, blob, card []byte) ([]byte, error) {
	manifest, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	modified := time.UnixMilli(m.ExportedAt)
	if err = writeMember(zw, ManifestName, zip.Deflate, modified, manifest); err != nil {
		return nil, err
	}
	// The payload is compressed and encrypted already; deflating it again is wasted work.
	if err = writeMember(zw, PayloadName, zip.Store, modified, blob); err != nil {
		return nil, err
	}
	if len(card) > 0 {
		if err = writeMember(zw, CardName, zip.Store, modified, card); err != nil {
			return nil, err
		}
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("finish container: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMember(zw *zip.Writer, name string, method uint16, modified time.Time, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: modified})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// parseContainer reads the manifest first and rejects unknown format tags
// before the encrypted member is even located.
func parseContainer(data []byte) (Parsed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	raw, err := readMember(zr, ManifestName, maxManifestSize)
	if err != nil {
		return Parsed{}, err
	}

	var m Manifest
	if err = json.Unmarshal(raw, &m); err != nil {
		return Parsed{}, fmt.Errorf("%w: malformed %s: %v", ErrInvalidFormat, ManifestName, err)
	}
	if m.Format != FormatTag {
		return Parsed{}, fmt.Errorf("%w: unsupported format tag %q", ErrInvalidFormat, m.Format)
	}

	blob, err := readMember(zr, PayloadName, maxPayloadSize)
	if err != nil {
		return Parsed{}, err
	}

	return Parsed{Format: FormatContainer, Manifest: &m, Blob: blob}, nil
}

func readMember(zr *zip.Reader, name string, limit int64) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, name)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidFormat, name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidFormat, name, limit)
	}
	return data, nil
}

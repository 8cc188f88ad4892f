package vault

import (
	"encoding/base64"
	"strings"
)

// EncryptedSuffix is the suffix of the sibling marker column or key that
// flags a field as ciphertext.
const EncryptedSuffix = "_encrypted"

// Field is one protected value: plaintext, or the base64 envelope of the
// plaintext. The zero Field is an empty plaintext.
type Field struct {
	value     string
	encrypted bool
}

// PlainField wraps a plaintext value.
func PlainField(s string) Field {
	return Field{value: s}
}

// EncryptedField wraps an envelope produced by an [Unlocked] handle.
func EncryptedField(envelope []byte) Field {
	return Field{value: base64.StdEncoding.EncodeToString(envelope), encrypted: true}
}

// StoredField rebuilds a Field from its on-disk pair: the value column and
// its _encrypted marker.
func StoredField(value string, encrypted bool) Field {
	return Field{value: value, encrypted: encrypted}
}

func (f Field) Encrypted() bool { return f.encrypted }

// Columns returns the on-disk pair for f.
func (f Field) Columns() (value string, encrypted bool) {
	return f.value, f.encrypted
}

// Reveal returns the plaintext. Plaintext fields are returned as is, even
// with a nil handle; encrypted ones need an unlocked handle.
func (f Field) Reveal(u *Unlocked) (string, error) {
	if !f.encrypted {
		return f.value, nil
	}
	if u == nil {
		return "", ErrLocked
	}
	return u.DecryptField(f)
}

func (f Field) envelope() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.value)
}

// DecodeSiblings turns a raw record using the sibling convention (a string
// under "content" and a bool under "content_encrypted") into typed fields.
// Marker keys are consumed; non-string values are skipped.
func DecodeSiblings(record map[string]any) map[string]Field {
	out := make(map[string]Field, len(record))
	for key, raw := range record {
		if strings.HasSuffix(key, EncryptedSuffix) {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		flag, _ := record[key+EncryptedSuffix].(bool)
		out[key] = StoredField(s, flag)
	}
	return out
}

// EncodeSiblings is the inverse of DecodeSiblings. Only encrypted fields get
// a marker key.
func EncodeSiblings(fields map[string]Field) map[string]any {
	out := make(map[string]any, len(fields))
	for key, f := range fields {
		out[key] = f.value
		if f.encrypted {
			out[key+EncryptedSuffix] = true
		}
	}
	return out
}

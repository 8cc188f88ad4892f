package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Variants(t *testing.T) {
	p := PlainField("hello")
	assert.False(t, p.Encrypted())
	v, enc := p.Columns()
	assert.Equal(t, "hello", v)
	assert.False(t, enc)

	e := EncryptedField([]byte{0xde, 0xad})
	assert.True(t, e.Encrypted())
	v, enc = e.Columns()
	assert.Equal(t, "3q0=", v)
	assert.True(t, enc)

	var zero Field
	got, err := zero.Reveal(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestField_InvalidCiphertext(t *testing.T) {
	u := &Unlocked{}
	_, err := u.DecryptField(StoredField("%%% not base64", true))
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestDecodeSiblings(t *testing.T) {
	record := map[string]any{
		"id":                "d1",
		"content":           "Y2lwaGVy",
		"content_encrypted": true,
		"title":             "t",
		"title_encrypted":   false,
		"mood":              "calm",
		"createdAt":         float64(12),
	}

	fields := DecodeSiblings(record)

	assert.Len(t, fields, 4)
	assert.True(t, fields["content"].Encrypted())
	assert.False(t, fields["title"].Encrypted())
	assert.False(t, fields["mood"].Encrypted())
	assert.NotContains(t, fields, "content_encrypted")
	assert.NotContains(t, fields, "createdAt")

	back := EncodeSiblings(fields)
	assert.Equal(t, true, back["content_encrypted"])
	assert.NotContains(t, back, "title_encrypted")
	assert.Equal(t, "Y2lwaGVy", back["content"])
}

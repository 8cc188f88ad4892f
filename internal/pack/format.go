package pack

import (
	"bytes"
	"fmt"
)

// Format identifies the layout a package was read from.
type Format int

const (
	// FormatContainer is the ZIP container with a signed, encrypted payload.
	FormatContainer Format = iota + 1
	// FormatLegacyUnsigned is a legacy PNG carrying compressed plaintext.
	FormatLegacyUnsigned
	// FormatLegacySigned is a legacy PNG carrying an encrypted envelope.
	FormatLegacySigned
)

func (f Format) String() string {
	switch f {
	case FormatContainer:
		return FormatTag
	case FormatLegacyUnsigned:
		return "legacy-image-unsigned"
	case FormatLegacySigned:
		return "legacy-image-signed"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Signed reports whether packages of this format carry tamper evidence.
func (f Format) Signed() bool {
	return f == FormatContainer || f == FormatLegacySigned
}

// Parsed is a package whose structure has been validated but whose payload
// has not been decrypted yet.
type Parsed struct {
	Format Format
	// Manifest is set for FormatContainer only.
	Manifest *Manifest
	// Blob is the envelope for signed formats and the compressed JSON for
	// FormatLegacyUnsigned.
	Blob []byte
}

// Signed reports whether the payload is protected by a signature. Unsigned
// packages make no tamper-evidence claim.
func (p Parsed) Signed() bool {
	return p.Format.Signed()
}

var (
	zipMagic = []byte("PK\x03\x04")
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
)

// decoder turns raw bytes of one layout family into a Parsed package.
type decoder struct {
	name   string
	match  func(data []byte) bool
	decode func(data []byte) (Parsed, error)
}

// decoders is the closed set of supported layouts. A new layout is one more
// entry here plus its decode function.
var decoders = []decoder{
	{
		name:   "container",
		match:  func(data []byte) bool { return bytes.HasPrefix(data, zipMagic) },
		decode: parseContainer,
	},
	{
		name:   "legacy-image",
		match:  func(data []byte) bool { return bytes.HasPrefix(data, pngMagic) },
		decode: parseLegacyImage,
	},
}

func dispatch(data []byte) (Parsed, error) {
	for _, d := range decoders {
		if d.match(data) {
			parsed, err := d.decode(data)
			if err != nil {
				return Parsed{}, fmt.Errorf("%s: %w", d.name, err)
			}
			return parsed, nil
		}
	}
	return Parsed{}, fmt.Errorf("%w: unrecognised file signature", ErrInvalidFormat)
}

// Detect reports which layout data is in. Legacy images must be decoded to
// tell signed from unsigned; a caller that opens the package afterwards
// keeps the result of Parse instead.
func Detect(data []byte) (Format, error) {
	parsed, err := dispatch(data)
	if err != nil {
		return 0, err
	}
	return parsed.Format, nil
}

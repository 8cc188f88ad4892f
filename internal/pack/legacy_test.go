package pack

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeLegacyImage writes payload the way old releases did.
func encodeLegacyImage(t *testing.T, magic string, payload []byte) []byte {
	t.Helper()

	stream := make([]byte, 0, legacyHeaderSize+len(payload))
	stream = append(stream, magic...)
	stream = binary.BigEndian.AppendUint32(stream, uint32(len(payload)))
	stream = append(stream, payload...)

	pixels := (len(stream) + 2) / 3
	width := 16
	height := (pixels + width - 1) / width

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		var rgb [3]byte
		for c := 0; c < 3; c++ {
			if idx := i*3 + c; idx < len(stream) {
				rgb[c] = stream[idx]
			}
		}
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPixelReader_ReadsRowMajorRGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	img.SetNRGBA(1, 0, color.NRGBA{4, 5, 6, 255})
	img.SetNRGBA(0, 1, color.NRGBA{7, 8, 9, 255})
	img.SetNRGBA(1, 1, color.NRGBA{10, 11, 12, 255})

	r := newPixelReader(img)
	require.Equal(t, 12, r.remaining())
	require.Equal(t, []byte{1, 2, 3, 4}, r.read(4))
	require.Equal(t, []byte{5, 6, 7, 8, 9, 10, 11, 12}, r.read(100))
	require.Equal(t, 0, r.remaining())
}

// pngHeaderOnly returns a PNG that declares an 8-bit RGB image of the given
// size and carries no pixel data.
func pngHeaderOnly(width, height uint32) []byte {
	chunk := func(typ string, data []byte) []byte {
		out := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
		body := append([]byte(typ), data...)
		out = append(out, body...)
		return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(body))
	}

	ihdr := binary.BigEndian.AppendUint32(nil, width)
	ihdr = binary.BigEndian.AppendUint32(ihdr, height)
	ihdr = append(ihdr, 8, 2, 0, 0, 0)

	out := append([]byte(nil), pngMagic...)
	out = append(out, chunk("IHDR", ihdr)...)
	return append(out, chunk("IEND", nil)...)
}

func TestParseLegacyImage_DeclaredSizeLimit(t *testing.T) {
	for _, side := range []uint32{12000, 65535} {
		_, err := parseLegacyImage(pngHeaderOnly(side, side))
		require.ErrorIs(t, err, ErrInvalidFormat)
		assert.Contains(t, err.Error(), "size limit")
	}

	_, err := parseLegacyImage(pngHeaderOnly(16, 1))
	require.ErrorIs(t, err, ErrInvalidFormat, "a small header without pixel data still fails to decode")
	assert.NotContains(t, err.Error(), "size limit")
}

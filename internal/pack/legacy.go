package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// Legacy images store a byte stream in the R, G and B channels of every
// pixel, row by row:
//
//	magic(4) ‖ length(uint32, big endian) ‖ payload(length)
const (
	legacyMagicUnsigned = "MSA1"
	legacyMagicSigned   = "MSA2"
	legacyHeaderSize    = 8

	// maxLegacyStreamSize bounds the channel stream an image may declare.
	maxLegacyStreamSize = maxPayloadSize + legacyHeaderSize
)

func parseLegacyImage(data []byte) (Parsed, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: decode image header: %v", ErrInvalidFormat, err)
	}
	if int64(cfg.Width)*int64(cfg.Height)*3 > maxLegacyStreamSize {
		return Parsed{}, fmt.Errorf("%w: image of %dx%d exceeds the size limit", ErrInvalidFormat, cfg.Width, cfg.Height)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: decode image: %v", ErrInvalidFormat, err)
	}

	r := newPixelReader(img)

	header := r.read(legacyHeaderSize)
	if len(header) < legacyHeaderSize {
		return Parsed{}, fmt.Errorf("%w: image too small for a payload", ErrInvalidFormat)
	}

	var format Format
	switch string(header[:4]) {
	case legacyMagicUnsigned:
		format = FormatLegacyUnsigned
	case legacyMagicSigned:
		format = FormatLegacySigned
	default:
		return Parsed{}, fmt.Errorf("%w: no embedded payload marker", ErrInvalidFormat)
	}

	length := int(binary.BigEndian.Uint32(header[4:]))
	if length == 0 || length > r.remaining() {
		return Parsed{}, fmt.Errorf("%w: embedded length %d out of range", ErrInvalidFormat, length)
	}

	return Parsed{Format: format, Blob: r.read(length)}, nil
}

// pixelReader yields the RGB bytes of an image in row-major order.
type pixelReader struct {
	img    image.Image
	bounds image.Rectangle
	pos    int // byte offset into the channel stream
}

func newPixelReader(img image.Image) *pixelReader {
	return &pixelReader{img: img, bounds: img.Bounds()}
}

func (r *pixelReader) capacity() int {
	return r.bounds.Dx() * r.bounds.Dy() * 3
}

func (r *pixelReader) remaining() int {
	return r.capacity() - r.pos
}

func (r *pixelReader) read(n int) []byte {
	if n > r.remaining() {
		n = r.remaining()
	}
	out := make([]byte, 0, n)
	width := r.bounds.Dx()
	for len(out) < n {
		pixel := r.pos / 3
		x := r.bounds.Min.X + pixel%width
		y := r.bounds.Min.Y + pixel/width
		c := color.NRGBAModel.Convert(r.img.At(x, y)).(color.NRGBA)

		switch r.pos % 3 {
		case 0:
			out = append(out, c.R)
		case 1:
			out = append(out, c.G)
		case 2:
			out = append(out, c.B)
		}
		r.pos++
	}
	return out
}

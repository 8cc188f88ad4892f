// Package card renders the cosmetic image stored next to the payload of an
// export package. The image is drawn from summary counters only and carries
// no recoverable user data.
package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/MKhiriev/go-myself-vault/models"
)

//go:generate mockgen -source=card.go -destination=../mock/card_mock.go -package=mock

// Renderer draws a card for an export.
type Renderer interface {
	Render(summary models.CardSummary) ([]byte, error)
}

const (
	Width  = 320
	Height = 180

	padding  = 16
	barGap   = 12
	minBar   = 4
	barScale = 10
)

var (
	background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}
	barColors  = []color.NRGBA{
		{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}, // tests
		{R: 0xa6, G: 0xe3, B: 0xa1, A: 0xff}, // diary
		{R: 0xf9, G: 0xe2, B: 0xaf, A: 0xff}, // contacts
		{R: 0xf3, G: 0x8b, B: 0xa8, A: 0xff}, // test types
	}
)

type barRenderer struct{}

// NewRenderer returns the default [Renderer]: one vertical bar per counter,
// left to right tests, diary entries, contacts and distinct test types.
func NewRenderer() Renderer {
	return &barRenderer{}
}

func (r *barRenderer) Render(summary models.CardSummary) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	fill(img, img.Bounds(), background)

	values := Bars(summary)
	barWidth := (Width - 2*padding - (len(values)-1)*barGap) / len(values)
	for i, v := range values {
		h := BarHeight(v)
		x0 := padding + i*(barWidth+barGap)
		fill(img, image.Rect(x0, Height-padding-h, x0+barWidth, Height-padding), barColors[i%len(barColors)])
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// Bars returns the counters drawn on the card, in drawing order.
func Bars(summary models.CardSummary) []int {
	return []int{summary.TestCount, summary.DiaryCount, summary.ContactCount, len(summary.TestTypes)}
}

// BarHeight maps a counter to a bar height in pixels. Zero still draws a
// stub so the card never looks empty; large counters are capped.
func BarHeight(v int) int {
	maxBar := Height - 2*padding
	h := minBar + v*barScale
	if h > maxBar {
		return maxBar
	}
	return h
}

func fill(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

package render

import (
	"image/color"
	"testing"

	"github.com/PixPMusic/gopher-surface/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFillsBackgroundAndDrawsText(t *testing.T) {
	r, err := New(DefaultFontSize)
	require.NoError(t, err)

	face := surface.Face{Text: "Rate\n192k", Background: surface.Black, Foreground: surface.White}
	img, err := r.Render(face, 80, 80)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
	assert.Equal(t, surface.Black, img.RGBAAt(0, 0))
	assert.Equal(t, surface.Black, img.RGBAAt(79, 79))

	lit := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if img.RGBAAt(x, y) != surface.Black {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
}

func TestRenderEmptyText(t *testing.T) {
	r, err := New(0)
	require.NoError(t, err)

	bg := color.RGBA{R: 0x2e, G: 0x86, B: 0xde, A: 0xff}
	img, err := r.Render(surface.Face{Background: bg, Foreground: surface.White}, 10, 10)
	require.NoError(t, err)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.Equal(t, bg, img.RGBAAt(x, y))
		}
	}
}

func TestRenderShrinksLongLabels(t *testing.T) {
	r, err := New(40)
	require.NoError(t, err)

	assert.Less(t, r.fit([]string{"A very long label"}, 60, 60), 40.0)
	assert.Equal(t, 40.0, r.fit([]string{"A"}, 400, 400))
	assert.Equal(t, float64(minFontSize), r.fit([]string{"Impossible"}, 1, 1))
}

func TestRenderRejectsEmptyBounds(t *testing.T) {
	r, err := New(DefaultFontSize)
	require.NoError(t, err)

	_, err = r.Render(surface.Face{Text: "x"}, 0, 10)
	assert.ErrorIs(t, err, ErrEmptyBounds)
}

func TestNewWithFontRejectsGarbage(t *testing.T) {
	_, err := NewWithFont([]byte("not a font"), 12)
	assert.Error(t, err)
}

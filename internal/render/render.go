// Package render draws control faces as bitmaps for surfaces with displays
// and for the on-screen surface.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/PixPMusic/gopher-surface/internal/surface"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultFontSize = 14
	dpi             = 72
	padding         = 4
	minFontSize     = 6
)

var ErrEmptyBounds = errors.New("render: width and height must be positive")

// Renderer draws centered text in a colored box
type Renderer struct {
	font *truetype.Font
	size float64
}

// New returns a renderer using the bundled Go font
func New(size float64) (*Renderer, error) {
	return NewWithFont(goregular.TTF, size)
}

// NewWithFont returns a renderer using the given TrueType font
func NewWithFont(ttf []byte, size float64) (*Renderer, error) {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	return &Renderer{font: f, size: size}, nil
}

// Render draws face into a new w x h image. Lines that do not fit are drawn
// at a smaller size, down to a floor.
func (r *Renderer) Render(face surface.Face, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyBounds, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(face.Background), image.Point{}, draw.Src)

	lines := strings.Split(face.Text, "\n")
	size := r.fit(lines, w, h)

	ff := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: dpi})
	defer ff.Close()

	metrics := ff.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	ascent := metrics.Ascent.Ceil()

	c := freetype.NewContext()
	c.SetFont(r.font)
	c.SetFontSize(size)
	c.SetDPI(dpi)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(face.Foreground))

	top := (h - lineHeight*len(lines)) / 2
	for i, line := range lines {
		x := (w - measure(ff, line).Ceil()) / 2
		y := top + i*lineHeight + ascent
		if _, err := c.DrawString(line, freetype.Pt(x, y)); err != nil {
			return nil, fmt.Errorf("draw %q: %w", line, err)
		}
	}

	return img, nil
}

// fit shrinks the font size until every line fits the box
func (r *Renderer) fit(lines []string, w, h int) float64 {
	size := r.size
	for size > minFontSize {
		ff := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: dpi})
		metrics := ff.Metrics()
		height := (metrics.Ascent + metrics.Descent).Ceil() * len(lines)
		widest := fixed.Int26_6(0)
		for _, line := range lines {
			widest = max(widest, measure(ff, line))
		}
		ff.Close()

		if widest.Ceil() <= w-2*padding && height <= h-2*padding {
			break
		}
		size--
	}
	return max(size, minFontSize)
}

func measure(ff font.Face, s string) fixed.Int26_6 {
	var width fixed.Int26_6
	for _, r := range s {
		if adv, ok := ff.GlyphAdvance(r); ok {
			width += adv
		}
	}
	return width
}

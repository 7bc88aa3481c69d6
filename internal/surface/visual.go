package surface

import "image/color"

var (
	Black = color.RGBA{A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	// DefaultActiveColor is used when a control configures no active color.
	DefaultActiveColor = color.RGBA{R: 0x2e, G: 0x86, B: 0xde, A: 0xff}
)

// Face is what a control looks like right now.
type Face struct {
	Text       string
	Background color.RGBA
	Foreground color.RGBA
}

// Visual is a control's color policy. Inactive faces draw the foreground on
// black; active faces draw the inverted foreground on the active color.
type Visual struct {
	ActiveColor color.RGBA
	Foreground  color.RGBA
}

// Face builds the face for text in the given state.
func (v Visual) Face(text string, active bool) Face {
	fg := v.Foreground
	if fg.A == 0 {
		fg = White
	}
	if !active {
		return Face{Text: text, Background: Black, Foreground: fg}
	}
	bg := v.ActiveColor
	if bg.A == 0 {
		bg = DefaultActiveColor
	}
	return Face{Text: text, Background: bg, Foreground: invert(fg)}
}

func invert(c color.RGBA) color.RGBA {
	return color.RGBA{R: 0xff - c.R, G: 0xff - c.G, B: 0xff - c.B, A: c.A}
}

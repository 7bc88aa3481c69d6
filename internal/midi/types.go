package midi

import (
	"fmt"
	"image/color"
)

// DeviceType represents the type of device
type DeviceType string

const (
	DeviceTypeClassic  DeviceType = "classic"  // Launchpad S - no special programmer mode
	DeviceTypeColorful DeviceType = "colorful" // Launchpad Mini Mk3 - requires SysEx
	DeviceTypeGeneric  DeviceType = "generic"  // Any note/CC controller with relative encoders
)

// PadColor represents an RGB color for a pad
type PadColor struct {
	R, G, B uint8 // 0-127 for each channel
}

// PadColorFromRGBA scales an 8-bit color down to the 7-bit pad range
func PadColorFromRGBA(c color.RGBA) PadColor {
	return PadColor{R: c.R >> 1, G: c.G >> 1, B: c.B >> 1}
}

// IsOff reports whether the color is dark enough to count as unlit
func (c PadColor) IsOff() bool {
	return c.R < 5 && c.G < 5 && c.B < 5
}

// InputKind identifies how a physical control is addressed
type InputKind string

const (
	InputPad  InputKind = "pad"  // grid position on a Launchpad
	InputNote InputKind = "note" // note number on a generic controller
	InputCC   InputKind = "cc"   // controller number on a generic controller
)

// Input identifies one physical control on a device
type Input struct {
	Kind   InputKind
	Row    int
	Col    int
	Number uint8
}

// PadInput returns the input for a grid position
func PadInput(row, col int) Input { return Input{Kind: InputPad, Row: row, Col: col} }

// NoteInput returns the input for a note number
func NoteInput(n uint8) Input { return Input{Kind: InputNote, Number: n} }

// CCInput returns the input for a controller number
func CCInput(n uint8) Input { return Input{Kind: InputCC, Number: n} }

func (i Input) String() string {
	switch i.Kind {
	case InputPad:
		return fmt.Sprintf("pad(%d,%d)", i.Row, i.Col)
	case InputNote:
		return fmt.Sprintf("note(%d)", i.Number)
	case InputCC:
		return fmt.Sprintf("cc(%d)", i.Number)
	default:
		return "unknown"
	}
}

// GestureKind is what the user did with a control
type GestureKind int

const (
	GesturePress GestureKind = iota
	GestureRelease
	GestureRotate
)

// Gesture is a decoded input event
type Gesture struct {
	Input Input
	Kind  GestureKind
	Ticks int // signed, for GestureRotate only; positive is clockwise
}

// PadMapping describes how to address a pad on a specific device
type PadMapping struct {
	IsCC     bool  // true = Control Change, false = Note
	Number   uint8 // CC number or Note number
	Exists   bool  // false if this pad doesn't exist on the device
	LEDIndex uint8 // For Mini Mk3 SysEx, the LED index
}

package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// ColorfulDevice implements Device for Launchpad Mini Mk3
type ColorfulDevice struct{}

var novationHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0D}

func (d *ColorfulDevice) ActivateProgrammerMode(send func(midi.Message) error) error {
	// SysEx for programmer mode: 00 20 29 02 0D 0E 01
	sysexContent := append(append([]byte{}, novationHeader...), 0x0E, 0x01)
	if err := send(midi.SysEx(sysexContent)); err != nil {
		return fmt.Errorf("failed to send programmer mode message: %w", err)
	}
	return nil
}

// ledIndex maps a grid position to the programmer-mode LED index:
// bottom-left is 11, top-right is 99.
func (d *ColorfulDevice) ledIndex(row, col int) (uint8, bool) {
	if row < 0 || row > 8 || col < 0 || col > 8 {
		return 0, false
	}
	return uint8((8-row)*10 + col + 11), true
}

func (d *ColorfulDevice) SetColor(send func(midi.Message) error, in Input, color PadColor) error {
	if in.Kind != InputPad {
		return nil
	}
	led, ok := d.ledIndex(in.Row, in.Col)
	if !ok {
		return nil
	}

	// SysEx for RGB LED: F0 00 20 29 02 0D 03 03 <led> <r> <g> <b> F7
	sysexContent := append(append([]byte{}, novationHeader...),
		0x03,
		0x03, // RGB mode
		led,
		d.scaleColor(color.R)&0x7F,
		d.scaleColor(color.G)&0x7F,
		d.scaleColor(color.B)&0x7F,
	)
	return send(midi.SysEx(sysexContent))
}

// scaleColor applies a power curve so mid-range colors stay distinct
func (d *ColorfulDevice) scaleColor(value uint8) uint8 {
	if value == 0 {
		return 0
	}
	f := float64(value) / 127.0
	scaled := f * f * 127.0
	if scaled < 1 {
		scaled = 1 // Ensure non-zero input gives non-zero output
	}
	return uint8(scaled)
}

func (d *ColorfulDevice) ClearAllPads(send func(midi.Message) error) error {
	sysexContent := append(append([]byte{}, novationHeader...), 0x03)
	for i := 11; i <= 99; i++ {
		if i%10 >= 1 && i%10 <= 9 {
			sysexContent = append(sysexContent, 0x00, uint8(i), 0x00) // Static off
		}
	}
	return send(midi.SysEx(sysexContent))
}

func (d *ColorfulDevice) HandleMessage(msg midi.Message) (Gesture, bool) {
	var channel, key, velocity uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if row, col, ok := d.noteToGrid(key); ok {
			return pressOrRelease(PadInput(row, col), velocity), true
		}

	case msg.GetNoteOff(&channel, &key, &velocity):
		if row, col, ok := d.noteToGrid(key); ok {
			return pressOrRelease(PadInput(row, col), 0), true
		}

	case msg.GetControlChange(&channel, &key, &velocity):
		if key >= 91 && key <= 98 {
			// top row
			return pressOrRelease(PadInput(0, int(key-91)), velocity), true
		} else if key%10 == 9 && key >= 19 && key <= 89 {
			// right column: 19 is bottom right (Row 8), 89 is top right (Row 1)
			return pressOrRelease(PadInput(8-int((key-19)/10), 8), velocity), true
		}
	}

	return Gesture{}, false
}

// noteToGrid inverts ledIndex
func (d *ColorfulDevice) noteToGrid(note uint8) (int, int, bool) {
	if note < 11 || note > 99 {
		return 0, 0, false
	}
	row := 8 - int((note-11)/10)
	col := int((note - 11) % 10)
	if row >= 0 && row <= 8 && col >= 0 && col <= 8 {
		return row, col, true
	}
	return 0, 0, false
}

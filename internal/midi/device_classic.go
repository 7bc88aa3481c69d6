package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// ClassicDevice implements Device for Launchpad S
type ClassicDevice struct{}

func (d *ClassicDevice) ActivateProgrammerMode(send func(midi.Message) error) error {
	// Send reset: B0 00 00 (CC 0 value 0)
	if err := send(midi.ControlChange(0, 0, 0)); err != nil {
		return fmt.Errorf("failed to reset Launchpad S: %w", err)
	}
	return nil
}

// padMapping locates a grid position on the Launchpad S.
// Top row is CC 104-111; rows 1-8 are notes offset by 16 per row.
func (d *ClassicDevice) padMapping(row, col int) PadMapping {
	switch {
	case row < 0 || row > 8 || col < 0 || col > 8:
		return PadMapping{}
	case row == 0 && col == 8:
		return PadMapping{}
	case row == 0:
		return PadMapping{IsCC: true, Number: uint8(104 + col), Exists: true}
	default:
		return PadMapping{Number: uint8((row-1)*16 + col), Exists: true}
	}
}

func (d *ClassicDevice) SetColor(send func(midi.Message) error, in Input, color PadColor) error {
	if in.Kind != InputPad {
		return nil
	}
	mapping := d.padMapping(in.Row, in.Col)
	if !mapping.Exists {
		return nil
	}

	velocity := d.velocity(color)
	if mapping.IsCC {
		return send(midi.ControlChange(0, mapping.Number, velocity))
	}
	return send(midi.NoteOn(0, mapping.Number, velocity))
}

// velocity packs a color into the Launchpad S format: bits 5-4 green,
// bits 3-2 copy/clear flags, bits 1-0 red. Blue is folded into both.
func (d *ClassicDevice) velocity(color PadColor) uint8 {
	if color.IsOff() {
		return 0x0C
	}
	effectiveR := min(int(color.R)+int(color.B)/4, 127)
	effectiveG := min(int(color.G)+(int(color.B)*3)/4, 127)

	redLevel := d.colorTo4Level(uint8(effectiveR))
	greenLevel := d.colorTo4Level(uint8(effectiveG))
	return (greenLevel << 4) | 0x0C | redLevel
}

func (d *ClassicDevice) colorTo4Level(value uint8) uint8 {
	if value < 32 {
		return 0
	} else if value < 64 {
		return 1
	} else if value < 96 {
		return 2
	}
	return 3
}

func (d *ClassicDevice) ClearAllPads(send func(midi.Message) error) error {
	return send(midi.ControlChange(0, 0, 0))
}

func (d *ClassicDevice) HandleMessage(msg midi.Message) (Gesture, bool) {
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
		if key >= 104 && key <= 111 {
			return pressOrRelease(PadInput(0, int(key-104)), velocity), true
		}
	}

	return Gesture{}, false
}

// noteToGrid inverts the note layout: Row 1 = notes 0-8, Row 2 = notes 16-24, etc.
func (d *ClassicDevice) noteToGrid(note uint8) (int, int, bool) {
	row := int(note/16) + 1
	col := int(note % 16)
	if row >= 1 && row <= 8 && col >= 0 && col <= 8 {
		return row, col, true
	}
	return 0, 0, false
}

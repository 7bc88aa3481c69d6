package midi

import "gitlab.com/gomidi/midi/v2"

// GenericDevice implements Device for plain note/CC controllers.
// Notes are buttons; every CC is treated as a relative (endless) encoder.
type GenericDevice struct{}

func (d *GenericDevice) ActivateProgrammerMode(send func(midi.Message) error) error {
	return nil
}

// SetColor lights note buttons through velocity, which most controllers
// with single-color button LEDs understand.
func (d *GenericDevice) SetColor(send func(midi.Message) error, in Input, color PadColor) error {
	if in.Kind != InputNote {
		return nil
	}
	if color.IsOff() {
		return send(midi.NoteOn(0, in.Number, 0))
	}
	return send(midi.NoteOn(0, in.Number, 127))
}

func (d *GenericDevice) ClearAllPads(send func(midi.Message) error) error {
	return nil
}

func (d *GenericDevice) HandleMessage(msg midi.Message) (Gesture, bool) {
	var channel, key, value uint8

	switch {
	case msg.GetNoteOn(&channel, &key, &value):
		return pressOrRelease(NoteInput(key), value), true

	case msg.GetNoteOff(&channel, &key, &value):
		return pressOrRelease(NoteInput(key), 0), true

	case msg.GetControlChange(&channel, &key, &value):
		ticks := RelativeTicks(value)
		if ticks == 0 {
			return Gesture{}, false
		}
		return Gesture{Input: CCInput(key), Kind: GestureRotate, Ticks: ticks}, true
	}

	return Gesture{}, false
}

// RelativeTicks decodes a two's-complement relative encoder value:
// 1-63 clockwise, 65-127 counterclockwise, 0 and 64 no movement.
func RelativeTicks(value uint8) int {
	switch {
	case value == 0 || value == 64:
		return 0
	case value < 64:
		return int(value)
	default:
		return int(value) - 128
	}
}

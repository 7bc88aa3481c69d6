package midi

import "gitlab.com/gomidi/midi/v2"

// Device represents a family of MIDI control surfaces
type Device interface {
	// ActivateProgrammerMode sends necessary commands to initialize the device
	ActivateProgrammerMode(send func(midi.Message) error) error

	// SetColor lights the control behind an input, if the device can
	SetColor(send func(midi.Message) error, in Input, color PadColor) error

	// ClearAllPads clears all pads on the device
	ClearAllPads(send func(midi.Message) error) error

	// HandleMessage decodes a MIDI message into a gesture.
	// Returns handled=false for messages that are not control input.
	HandleMessage(msg midi.Message) (g Gesture, handled bool)
}

// GetDevice returns the appropriate Device implementation for the given type
func GetDevice(deviceType DeviceType) Device {
	switch deviceType {
	case DeviceTypeClassic:
		return &ClassicDevice{}
	case DeviceTypeColorful:
		return &ColorfulDevice{}
	case DeviceTypeGeneric:
		return &GenericDevice{}
	default:
		return &ColorfulDevice{}
	}
}

func pressOrRelease(in Input, velocity uint8) Gesture {
	if velocity > 0 {
		return Gesture{Input: in, Kind: GesturePress}
	}
	return Gesture{Input: in, Kind: GestureRelease}
}

package midi

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type capture struct {
	msgs []midi.Message
}

func (c *capture) send(msg midi.Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestRelativeTicks(t *testing.T) {
	assert.Equal(t, 0, RelativeTicks(0))
	assert.Equal(t, 0, RelativeTicks(64))
	assert.Equal(t, 1, RelativeTicks(1))
	assert.Equal(t, 5, RelativeTicks(5))
	assert.Equal(t, -1, RelativeTicks(127))
	assert.Equal(t, -3, RelativeTicks(125))
}

func TestGenericDeviceGestures(t *testing.T) {
	d := &GenericDevice{}

	g, ok := d.HandleMessage(midi.NoteOn(0, 36, 100))
	require.True(t, ok)
	assert.Equal(t, Gesture{Input: NoteInput(36), Kind: GesturePress}, g)

	g, ok = d.HandleMessage(midi.NoteOff(0, 36))
	require.True(t, ok)
	assert.Equal(t, GestureRelease, g.Kind)

	g, ok = d.HandleMessage(midi.ControlChange(0, 16, 2))
	require.True(t, ok)
	assert.Equal(t, Gesture{Input: CCInput(16), Kind: GestureRotate, Ticks: 2}, g)

	g, ok = d.HandleMessage(midi.ControlChange(0, 16, 127))
	require.True(t, ok)
	assert.Equal(t, -1, g.Ticks)

	_, ok = d.HandleMessage(midi.ControlChange(0, 16, 64))
	assert.False(t, ok)

	_, ok = d.HandleMessage(midi.ProgramChange(0, 3))
	assert.False(t, ok)
}

func TestClassicDeviceGestures(t *testing.T) {
	d := &ClassicDevice{}

	g, ok := d.HandleMessage(midi.NoteOn(0, 16+3, 127))
	require.True(t, ok)
	assert.Equal(t, Gesture{Input: PadInput(2, 3), Kind: GesturePress}, g)

	g, ok = d.HandleMessage(midi.ControlChange(0, 105, 127))
	require.True(t, ok)
	assert.Equal(t, PadInput(0, 1), g.Input)

	_, ok = d.HandleMessage(midi.ControlChange(0, 20, 127))
	assert.False(t, ok)
}

func TestColorfulDeviceGestures(t *testing.T) {
	d := &ColorfulDevice{}

	// bottom-left pad
	g, ok := d.HandleMessage(midi.NoteOn(0, 11, 90))
	require.True(t, ok)
	assert.Equal(t, PadInput(8, 0), g.Input)

	// right column, row 1
	g, ok = d.HandleMessage(midi.ControlChange(0, 89, 127))
	require.True(t, ok)
	assert.Equal(t, PadInput(1, 8), g.Input)

	g, ok = d.HandleMessage(midi.ControlChange(0, 91, 0))
	require.True(t, ok)
	assert.Equal(t, Gesture{Input: PadInput(0, 0), Kind: GestureRelease}, g)
}

func TestClassicSetColor(t *testing.T) {
	d := &ClassicDevice{}
	c := &capture{}

	require.NoError(t, d.SetColor(c.send, PadInput(1, 0), PadColor{R: 127}))
	require.NoError(t, d.SetColor(c.send, PadInput(0, 8), PadColor{R: 127}))
	require.NoError(t, d.SetColor(c.send, NoteInput(3), PadColor{R: 127}))
	require.Len(t, c.msgs, 1)

	var ch, key, vel uint8
	require.True(t, c.msgs[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(0), key)
	assert.Equal(t, uint8(0x0F), vel) // red 3, flags 0x0C
}

func TestGenericSetColor(t *testing.T) {
	d := &GenericDevice{}
	c := &capture{}

	require.NoError(t, d.SetColor(c.send, NoteInput(40), PadColorFromRGBA(color.RGBA{R: 255, A: 255})))
	require.NoError(t, d.SetColor(c.send, NoteInput(40), PadColor{}))
	require.Len(t, c.msgs, 2)

	var ch, key, vel uint8
	require.True(t, c.msgs[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(127), vel)
	require.True(t, c.msgs[1].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(0), vel)
}

func TestPadColorFromRGBA(t *testing.T) {
	assert.Equal(t, PadColor{R: 127, G: 64, B: 0}, PadColorFromRGBA(color.RGBA{R: 255, G: 128, A: 255}))
	assert.True(t, PadColorFromRGBA(color.RGBA{A: 255}).IsOff())
}

func TestGetDeviceFallsBackToColorful(t *testing.T) {
	assert.IsType(t, &ColorfulDevice{}, GetDevice("unknown"))
	assert.IsType(t, &GenericDevice{}, GetDevice(DeviceTypeGeneric))
}

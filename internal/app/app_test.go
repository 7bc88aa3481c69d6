package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/host"
	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/profile"
	"github.com/PixPMusic/gopher-surface/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colorCall struct {
	port  string
	input midi.Input
	color midi.PadColor
}

type fakeMIDI struct {
	mu        sync.Mutex
	activated []string
	colors    []colorCall
	callbacks map[string]midi.GestureCallback
	stopped   int
	failPort  string
}

func newFakeMIDI() *fakeMIDI {
	return &fakeMIDI{callbacks: make(map[string]midi.GestureCallback)}
}

func (f *fakeMIDI) ActivateProgrammerMode(out string, _ midi.DeviceType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if out == f.failPort {
		return errors.New("port gone")
	}
	f.activated = append(f.activated, out)
	return nil
}

func (f *fakeMIDI) SetColor(out string, _ midi.DeviceType, in midi.Input, c midi.PadColor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colors = append(f.colors, colorCall{out, in, c})
	return nil
}

func (f *fakeMIDI) ClearAllPads(string, midi.DeviceType) error { return nil }

func (f *fakeMIDI) StartListening(in string, _ midi.DeviceType, cb midi.GestureCallback) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks[in] = cb
	return func() {
		f.mu.Lock()
		f.stopped++
		f.mu.Unlock()
	}, nil
}

func (f *fakeMIDI) colorsFor(in midi.Input) []midi.PadColor {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []midi.PadColor
	for _, c := range f.colors {
		if c.input == in {
			out = append(out, c.color)
		}
	}
	return out
}

func (f *fakeMIDI) gesture(port string, g midi.Gesture) {
	f.mu.Lock()
	cb := f.callbacks[port]
	f.mu.Unlock()
	cb(port, g)
}

type gateway struct {
	mu   sync.Mutex
	sent []string
}

func (g *gateway) Send(address string, _ float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, address)
}

func (g *gateway) addresses() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sent...)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AddDevice(config.DeviceConfig{ID: "1", Name: "Launchpad", InPort: "LP In", OutPort: "LP Out", Type: midi.DeviceTypeColorful})
	cfg.AddDevice(config.DeviceConfig{ID: "2", Name: "Knobs", InPort: "Knobs In", Type: midi.DeviceTypeGeneric})
	return cfg
}

func startApp(t *testing.T) (*App, *fakeMIDI, *gateway) {
	t.Helper()

	m := newFakeMIDI()
	gw := &gateway{}
	a, err := New(testConfig(), profile.Default(), gw, m, nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	a.InitializeDevices()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go a.Run(ctx)
	return a, m, gw
}

func TestInitializeDevicesLightsPads(t *testing.T) {
	_, m, _ := startApp(t)

	assert.Equal(t, []string{"LP Out"}, m.activated)

	active := midi.PadColorFromRGBA(surface.DefaultActiveColor)
	require.NotEmpty(t, m.colorsFor(midi.PadInput(1, 0)))
	assert.Equal(t, midi.PadColor{R: 0x17, G: 0x43, B: 0x6f}, m.colorsFor(midi.PadInput(1, 0))[0])
	assert.NotEqual(t, active, m.colorsFor(midi.PadInput(1, 1))[0])
	assert.True(t, m.colorsFor(midi.PadInput(1, 1))[0].IsOff())

	// Knobs has no output port
	assert.Empty(t, m.colorsFor(midi.CCInput(16)))
}

func TestPadPressSelectsAndRelights(t *testing.T) {
	a, m, gw := startApp(t)

	m.gesture("LP In", midi.Gesture{Input: midi.PadInput(1, 2), Kind: midi.GesturePress})
	m.gesture("LP In", midi.Gesture{Input: midi.PadInput(1, 2), Kind: midi.GestureRelease})

	require.Eventually(t, func() bool {
		return a.Surface().Coordinator.Current("Format") == "Format3"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Format/Format3/Toggle"}, gw.addresses())

	require.Eventually(t, func() bool {
		colors := m.colorsFor(midi.PadInput(1, 0))
		return len(colors) == 2 && colors[1].IsOff()
	}, time.Second, 5*time.Millisecond)
}

func TestEncoderDrivesDial(t *testing.T) {
	a, m, gw := startApp(t)

	m.gesture("Knobs In", midi.Gesture{Input: midi.CCInput(16), Kind: midi.GestureRotate, Ticks: 1})
	m.gesture("Knobs In", midi.Gesture{Input: midi.CCInput(16), Kind: midi.GestureRotate, Ticks: 1})
	require.Eventually(t, func() bool {
		return a.Surface().Coordinator.Current("SampleRate") == "192k"
	}, time.Second, 5*time.Millisecond)

	m.gesture("Knobs In", midi.Gesture{Input: midi.CCInput(19), Kind: midi.GestureRotate, Ticks: -1})
	require.Eventually(t, func() bool {
		return len(gw.addresses()) == 4
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{
		"SampleRate/96k/Toggle",
		"SampleRate/192k/Toggle",
		"View/Zoom_Left",
		"View/Zoom_Left",
	}, gw.addresses())
}

func TestUnmappedInputIsIgnored(t *testing.T) {
	a, _, gw := startApp(t)

	a.HandleGesture("Launchpad", midi.Gesture{Input: midi.PadInput(8, 8), Kind: midi.GesturePress})
	a.HandleGesture("Nobody", midi.Gesture{Input: midi.PadInput(1, 0), Kind: midi.GesturePress})
	assert.Empty(t, gw.addresses())
}

func TestStopMIDIListeners(t *testing.T) {
	a, m, _ := startApp(t)

	a.StartMIDIListeners()
	assert.Equal(t, 2, m.stopped)
	a.StopMIDIListeners()
	assert.Equal(t, 4, m.stopped)
}

func TestProgrammerModeFailureSkipsDevice(t *testing.T) {
	m := newFakeMIDI()
	m.failPort = "LP Out"
	a, err := New(testConfig(), profile.Default(), &gateway{}, m, nil)
	require.NoError(t, err)
	defer a.Close()

	a.InitializeDevices()
	assert.Empty(t, m.activated)
	assert.Len(t, m.callbacks, 2)
}

func TestNewRejectsInvalidProfile(t *testing.T) {
	p, err := profile.Parse([]byte("controls: [{kind: fader}]"))
	require.NoError(t, err)

	_, err = New(testConfig(), p, &gateway{}, newFakeMIDI(), nil)
	assert.ErrorIs(t, err, profile.ErrUnknownKind)
}

func TestDeviceTableIsCopied(t *testing.T) {
	cfg := testConfig()
	a, err := New(cfg, profile.Default(), &gateway{}, newFakeMIDI(), nil)
	require.NoError(t, err)
	defer a.Close()

	cfg.Devices[0].OutPort = "Elsewhere"
	cfg.AddDevice(config.NewDeviceConfig())
	require.Len(t, a.Devices(), 2)
	assert.Equal(t, "LP Out", a.Devices()[0].OutPort)

	edited := cfg.Devices
	a.SetDevices(edited)
	edited[0].OutPort = "Later"
	require.Len(t, a.Devices(), 3)
	assert.Equal(t, "Elsewhere", a.Devices()[0].OutPort)

	devices := a.Devices()
	devices[0].Name = "Changed"
	assert.Equal(t, "Launchpad", a.Devices()[0].Name)
}

func TestSetDevicesRoutesPadColors(t *testing.T) {
	m := newFakeMIDI()
	a, err := New(testConfig(), profile.Default(), &gateway{}, m, nil)
	require.NoError(t, err)
	defer a.Close()

	cfg := testConfig()
	cfg.Devices[0].OutPort = "LP Out 2"
	a.SetDevices(cfg.Devices)
	a.InitializeDevices()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, []string{"LP Out 2"}, m.activated)
	for _, c := range m.colors {
		assert.Equal(t, "LP Out 2", c.port)
	}
}

func TestEditingDevicesWhileRunning(t *testing.T) {
	cfg := testConfig()
	m := newFakeMIDI()
	gw := &gateway{}
	a, err := New(cfg, profile.Default(), gw, m, nil)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Run(ctx)

	// The editing goroutine plays the UI: it owns cfg and hands copies over.
	edited := make(chan struct{})
	go func() {
		defer close(edited)
		for i := 0; i < 200; i++ {
			cfg.AddDevice(config.NewDeviceConfig())
			cfg.Devices[0].Name = "Launchpad"
			if i%2 == 1 {
				cfg.Devices[0].Name = fmt.Sprintf("Launchpad %d", i)
			}
			a.SetDevices(cfg.Devices)
		}
	}()

	const presses = 200
	for i := 0; i < presses; i++ {
		for !a.Host().Dispatch(host.Event{ControlID: "loop", Kind: host.Press}) {
			runtime.Gosched()
		}
	}
	<-edited

	require.Eventually(t, func() bool {
		return len(gw.addresses()) == presses
	}, 5*time.Second, 5*time.Millisecond)
	face, ok := a.Host().Face("loop")
	require.True(t, ok)
	assert.Equal(t, surface.Black, face.Background)
	assert.Len(t, a.Devices(), 202)
}

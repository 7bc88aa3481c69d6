// Package app wires configuration, the surface profile, MIDI devices and the
// OSC gateway into a running host.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/host"
	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/profile"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// MIDI is the part of midi.Manager the app drives.
type MIDI interface {
	ActivateProgrammerMode(outPortName string, deviceType midi.DeviceType) error
	SetColor(outPortName string, deviceType midi.DeviceType, in midi.Input, color midi.PadColor) error
	ClearAllPads(outPortName string, deviceType midi.DeviceType) error
	StartListening(inPortName string, deviceType midi.DeviceType, callback midi.GestureCallback) (func(), error)
}

type inputKey struct {
	device string
	input  midi.Input
}

// App is a running surface.
type App struct {
	logger  *slog.Logger
	midi    MIDI
	host    *host.Host
	surface *profile.Surface

	// inputs maps physical inputs to the controls bound to them
	inputs map[inputKey][]string
	// outputs maps control IDs to the inputs whose LEDs show them
	outputs map[string][]profile.InputBinding

	// devices is the App's own copy of the device table. The config it came
	// from belongs to the UI goroutine; SetDevices replaces the copy.
	devicesMu sync.RWMutex
	devices   []config.DeviceConfig

	mu            sync.Mutex
	midiStopFuncs []func()
}

// New builds the profile and registers its controls with a new host. The
// device table is copied from cfg; later edits to cfg need SetDevices.
func New(cfg *config.Config, prof *profile.Profile, gw surface.Gateway, m MIDI, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	h := host.New(logger, host.DefaultQueueSize)
	s, err := prof.Build(profile.Deps{Gateway: gw, Redrawer: h})
	if err != nil {
		return nil, fmt.Errorf("build profile: %w", err)
	}
	if err := h.Register(s.Controls...); err != nil {
		return nil, err
	}

	a := &App{
		logger:  logger,
		midi:    m,
		host:    h,
		surface: s,
		inputs:  make(map[inputKey][]string),
		outputs: make(map[string][]profile.InputBinding),
		devices: slices.Clone(cfg.Devices),
	}
	for _, in := range s.Inputs {
		key := inputKey{device: in.Device, input: in.Input}
		a.inputs[key] = append(a.inputs[key], in.ControlID)
		a.outputs[in.ControlID] = append(a.outputs[in.ControlID], in)
	}

	if m != nil {
		h.Attach(host.RendererFunc(a.renderPad))
	}
	return a, nil
}

// Host returns the host running the controls.
func (a *App) Host() *host.Host { return a.host }

// Surface returns the built profile.
func (a *App) Surface() *profile.Surface { return a.surface }

// SetDevices replaces the device table with a copy of devices. Call
// InitializeDevices afterwards to apply it.
func (a *App) SetDevices(devices []config.DeviceConfig) {
	a.devicesMu.Lock()
	a.devices = slices.Clone(devices)
	a.devicesMu.Unlock()
}

// Devices returns a copy of the device table.
func (a *App) Devices() []config.DeviceConfig {
	a.devicesMu.RLock()
	defer a.devicesMu.RUnlock()
	return slices.Clone(a.devices)
}

func (a *App) deviceByName(name string) (config.DeviceConfig, bool) {
	a.devicesMu.RLock()
	defer a.devicesMu.RUnlock()
	for _, d := range a.devices {
		if d.Name == name {
			return d, true
		}
	}
	return config.DeviceConfig{}, false
}

// InitializeDevices puts all devices in programmer mode, shows every face
// and starts listening for input.
func (a *App) InitializeDevices() {
	if a.midi == nil {
		return
	}
	for _, device := range a.Devices() {
		if device.OutPort == "" {
			continue
		}
		if err := a.midi.ActivateProgrammerMode(device.OutPort, device.Type); err != nil {
			a.logger.Error("failed to activate programmer mode", "device", device.Name, "err", err)
			continue
		}
		if err := a.midi.ClearAllPads(device.OutPort, device.Type); err != nil {
			a.logger.Warn("failed to clear pads", "device", device.Name, "err", err)
		}
		a.logger.Info("activated programmer mode", "device", device.Name)
	}

	a.host.RedrawAll()
	a.host.Flush()

	a.StartMIDIListeners()
}

// StartMIDIListeners begins listening for MIDI input from all configured devices.
func (a *App) StartMIDIListeners() {
	a.StopMIDIListeners()
	if a.midi == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, device := range a.Devices() {
		if device.InPort == "" {
			continue
		}

		name := device.Name
		stop, err := a.midi.StartListening(device.InPort, device.Type, func(_ string, g midi.Gesture) {
			a.HandleGesture(name, g)
		})
		if err != nil {
			a.logger.Error("failed to start listener", "device", device.Name, "err", err)
			continue
		}

		if stop != nil {
			a.midiStopFuncs = append(a.midiStopFuncs, stop)
			a.logger.Info("started listening", "device", device.Name, "port", device.InPort)
		}
	}
}

// StopMIDIListeners stops all MIDI input listeners.
func (a *App) StopMIDIListeners() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, stop := range a.midiStopFuncs {
		if stop != nil {
			stop()
		}
	}
	a.midiStopFuncs = nil
}

// HandleGesture turns a gesture from the named device into host events.
// Releases are ignored; controls act on press.
func (a *App) HandleGesture(deviceName string, g midi.Gesture) {
	ids := a.inputs[inputKey{device: deviceName, input: g.Input}]
	if len(ids) == 0 {
		a.logger.Debug("unmapped input", "device", deviceName, "input", g.Input)
		return
	}

	var ev host.Event
	switch g.Kind {
	case midi.GesturePress:
		ev = host.Event{Kind: host.Press}
	case midi.GestureRotate:
		ev = host.Event{Kind: host.Rotate, Ticks: g.Ticks}
	default:
		return
	}

	for _, id := range ids {
		ev.ControlID = id
		a.host.Dispatch(ev)
	}
}

// renderPad lights the pads bound to a control with its face background.
func (a *App) renderPad(controlID string, face surface.Face) {
	bindings := a.outputs[controlID]
	if len(bindings) == 0 {
		return
	}
	color := midi.PadColorFromRGBA(face.Background)

	for _, b := range bindings {
		device, ok := a.deviceByName(b.Device)
		if !ok || device.OutPort == "" {
			continue
		}
		if err := a.midi.SetColor(device.OutPort, device.Type, b.Input, color); err != nil {
			a.logger.Warn("failed to set pad color", "device", device.Name, "input", b.Input, "err", err)
		}
	}
}

// Run handles input until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.host.Run(ctx)
}

// Close stops listening and releases the controls.
func (a *App) Close() {
	a.StopMIDIListeners()
	a.surface.Close()
}

package midi

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Manager handles MIDI device discovery and management.
// A driver must be registered by the importing program.
type Manager struct {
	mu sync.RWMutex
}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input port not found: %s", name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if out := m.findOutPort(name); out != nil {
		return out, nil
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}

// GestureCallback is called for every decoded gesture
type GestureCallback func(portName string, g Gesture)

// StartListening begins listening for MIDI input on the specified port.
// The returned function stops the listener.
func (m *Manager) StartListening(inPortName string, deviceType DeviceType, callback GestureCallback) (func(), error) {
	if inPortName == "" {
		return nil, nil
	}

	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	device := GetDevice(deviceType)
	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		if g, ok := device.HandleMessage(msg); ok {
			callback(inPortName, g)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	return stop, nil
}

// ActivateProgrammerMode sends the appropriate MIDI message to put the device in programmer mode
func (m *Manager) ActivateProgrammerMode(outPortName string, deviceType DeviceType) error {
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return GetDevice(deviceType).ActivateProgrammerMode(send)
	})
}

// SetColor lights the control behind an input using the device's color encoding
func (m *Manager) SetColor(outPortName string, deviceType DeviceType, in Input, color PadColor) error {
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return GetDevice(deviceType).SetColor(send, in, color)
	})
}

// ClearAllPads turns off all LEDs on a device
func (m *Manager) ClearAllPads(outPortName string, deviceType DeviceType) error {
	return m.withSender(outPortName, func(send func(midi.Message) error) error {
		return GetDevice(deviceType).ClearAllPads(send)
	})
}

func (m *Manager) withSender(outPortName string, fn func(send func(midi.Message) error) error) error {
	if outPortName == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	outPort := m.findOutPort(outPortName)
	if outPort == nil {
		return fmt.Errorf("output port not found: %s", outPortName)
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return fmt.Errorf("failed to create sender: %w", err)
	}
	return fn(send)
}

func (m *Manager) findOutPort(name string) drivers.Out {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out
		}
	}
	return nil
}

package surface

import (
	"fmt"
	"sync"
)

// Mode is a global switch between exactly two named values, such as the
// Track/Take envelope mode. Dependent controls read Current when they build
// an address and when they redraw, never at subscription time.
type Mode struct {
	name   string
	values [2]string

	mu   sync.RWMutex
	idx  int
	subs listeners[Change]
}

// NewMode creates a mode starting at first.
func NewMode(name, first, second string) (*Mode, error) {
	if first == "" || second == "" || first == second {
		return nil, fmt.Errorf("surface: mode %s needs two distinct values, got %q and %q", name, first, second)
	}
	return &Mode{name: name, values: [2]string{first, second}}, nil
}

// Name returns the mode's name.
func (m *Mode) Name() string { return m.name }

// Values returns both values, the initial one first.
func (m *Mode) Values() [2]string { return m.values }

// Current returns the active value.
func (m *Mode) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[m.idx]
}

// Alternate reports whether the mode sits on its second value.
func (m *Mode) Alternate() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idx == 1
}

// Toggle flips the mode and notifies subscribers once. It returns the new value.
func (m *Mode) Toggle() string {
	m.mu.Lock()
	prev := m.values[m.idx]
	m.idx = 1 - m.idx
	cur := m.values[m.idx]
	m.mu.Unlock()

	m.subs.notify(Change{Kind: ModeChanged, Name: m.name, Value: cur, Previous: prev})
	return cur
}

// Set moves the mode to value, notifying only when it changed.
func (m *Mode) Set(value string) error {
	m.mu.Lock()
	idx := -1
	for i, v := range m.values {
		if v == value {
			idx = i
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q in mode %s", ErrInvalidMember, value, m.name)
	}
	if idx == m.idx {
		m.mu.Unlock()
		return nil
	}
	prev := m.values[m.idx]
	m.idx = idx
	m.mu.Unlock()

	m.subs.notify(Change{Kind: ModeChanged, Name: m.name, Value: value, Previous: prev})
	return nil
}

// Subscribe registers fn for every mode change.
func (m *Mode) Subscribe(fn func(Change)) (unsubscribe func()) {
	return m.subs.add(fn)
}

// Watch calls fn after every mode change.
func (m *Mode) Watch(fn func()) (unwatch func()) {
	return m.subs.add(func(Change) { fn() })
}

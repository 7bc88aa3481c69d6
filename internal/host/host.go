// Package host owns the registered controls and feeds them gestures one at a
// time from a single goroutine, then pushes changed faces to renderers.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/PixPMusic/gopher-surface/internal/surface"
)

const DefaultQueueSize = 64

var (
	ErrUnknownControl   = errors.New("host: unknown control")
	ErrDuplicateControl = errors.New("host: control already registered")
)

// EventKind is the gesture an Event carries.
type EventKind int

const (
	Press EventKind = iota
	Rotate
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Rotate:
		return "rotate"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one gesture aimed at a control.
type Event struct {
	ControlID string
	Kind      EventKind
	Ticks     int // Rotate only; positive is clockwise
}

// Renderer shows faces somewhere: a window or pad LEDs.
type Renderer interface {
	Render(controlID string, face surface.Face)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(controlID string, face surface.Face)

func (f RendererFunc) Render(controlID string, face surface.Face) { f(controlID, face) }

// Host runs controls. It implements surface.Redrawer.
type Host struct {
	logger *slog.Logger
	events chan Event

	// stateMu serializes gesture handling with face reads from other goroutines
	stateMu  sync.Mutex
	controls map[string]*surface.Control
	order    []string

	mu        sync.Mutex
	dirty     map[string]struct{}
	renderers []Renderer

	dropped atomic.Int64
}

// New creates a host with a bounded event queue.
func New(logger *slog.Logger, queueSize int) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Host{
		logger:   logger,
		events:   make(chan Event, queueSize),
		controls: make(map[string]*surface.Control),
		dirty:    make(map[string]struct{}),
	}
}

// Register adds controls. IDs must be unique.
func (h *Host) Register(controls ...*surface.Control) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	for _, c := range controls {
		if _, ok := h.controls[c.ID()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateControl, c.ID())
		}
		h.controls[c.ID()] = c
		h.order = append(h.order, c.ID())
	}
	return nil
}

// Attach adds a renderer. Every face is marked dirty so the renderer gets a
// full picture on the next flush.
func (h *Host) Attach(r Renderer) {
	h.mu.Lock()
	h.renderers = append(h.renderers, r)
	h.mu.Unlock()
	h.RedrawAll()
}

// RequestRedraw marks a control's face as changed.
func (h *Host) RequestRedraw(controlID string) {
	h.mu.Lock()
	h.dirty[controlID] = struct{}{}
	h.mu.Unlock()
}

// RedrawAll marks every control dirty.
func (h *Host) RedrawAll() {
	h.stateMu.Lock()
	ids := append([]string(nil), h.order...)
	h.stateMu.Unlock()

	h.mu.Lock()
	for _, id := range ids {
		h.dirty[id] = struct{}{}
	}
	h.mu.Unlock()
}

// Dispatch queues an event without blocking. It reports false and drops the
// event if the queue is full.
func (h *Host) Dispatch(ev Event) bool {
	select {
	case h.events <- ev:
		return true
	default:
		h.dropped.Add(1)
		h.logger.Warn("event queue full, dropping", "control", ev.ControlID, "kind", ev.Kind)
		return false
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (h *Host) Dropped() int64 { return h.dropped.Load() }

// Run handles queued events until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	h.Flush()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-h.events:
			if err := h.Handle(ev); err != nil {
				h.logger.Warn("event not handled", "control", ev.ControlID, "kind", ev.Kind, "err", err)
			}
			h.Flush()
		}
	}
}

// Handle applies one event synchronously. Run calls it for queued events.
func (h *Host) Handle(ev Event) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	c, ok := h.controls[ev.ControlID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownControl, ev.ControlID)
	}

	h.logger.Debug("event", "control", ev.ControlID, "kind", ev.Kind, "ticks", ev.Ticks)
	switch ev.Kind {
	case Press:
		c.Press()
	case Rotate:
		c.Rotate(ev.Ticks)
	default:
		return fmt.Errorf("unknown event kind %v", ev.Kind)
	}
	return nil
}

// Flush pushes the faces of dirty controls to every renderer.
func (h *Host) Flush() {
	h.mu.Lock()
	if len(h.dirty) == 0 || len(h.renderers) == 0 {
		h.mu.Unlock()
		return
	}
	dirty := h.dirty
	h.dirty = make(map[string]struct{})
	renderers := append([]Renderer(nil), h.renderers...)
	h.mu.Unlock()

	type update struct {
		id   string
		face surface.Face
	}
	h.stateMu.Lock()
	updates := make([]update, 0, len(dirty))
	for _, id := range h.order {
		if _, ok := dirty[id]; ok {
			updates = append(updates, update{id, h.controls[id].Face()})
		}
	}
	h.stateMu.Unlock()

	for _, u := range updates {
		for _, r := range renderers {
			r.Render(u.id, u.face)
		}
	}
}

// Face returns a control's current face.
func (h *Host) Face(controlID string) (surface.Face, bool) {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	c, ok := h.controls[controlID]
	if !ok {
		return surface.Face{}, false
	}
	return c.Face(), true
}

// Controls returns the registered controls in registration order.
func (h *Host) Controls() []*surface.Control {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	out := make([]*surface.Control, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.controls[id])
	}
	return out
}

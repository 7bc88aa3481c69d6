package surface

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Configuration errors reported by the coordinators.
var (
	ErrUnknownGroup  = errors.New("surface: unknown selection group")
	ErrUnknownFlag   = errors.New("surface: unknown flag")
	ErrInvalidMember = errors.New("surface: value is not a member")
	ErrEmptyGroup    = errors.New("surface: selection group has no members")
	ErrDuplicate     = errors.New("surface: already defined")
)

// ChangeKind tells subscribers which kind of state moved.
type ChangeKind int

const (
	GroupChanged ChangeKind = iota
	FlagChanged
	ModeChanged
)

func (k ChangeKind) String() string {
	switch k {
	case GroupChanged:
		return "group"
	case FlagChanged:
		return "flag"
	case ModeChanged:
		return "mode"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes one settled state transition.
type Change struct {
	Kind ChangeKind
	Name string

	// Value and Previous hold the group member or mode value.
	Value    string
	Previous string

	// Flag holds the new value of a flag.
	Flag bool
}

type group struct {
	members []string
	current string
}

// Coordinator owns the selection groups and independent flags shared between
// controls. It never sends protocol messages; the control that triggered a
// change is responsible for that.
//
// Subscribers run synchronously, outside the lock, in registration order.
// A subscriber may mutate the coordinator again; nothing stops it from
// looping.
type Coordinator struct {
	mu     sync.RWMutex
	groups map[string]*group
	order  []string
	flags  map[string]bool
	subs   listeners[Change]
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		groups: make(map[string]*group),
		flags:  make(map[string]bool),
	}
}

// DefineGroup registers a selection group with its mandatory default member.
func (c *Coordinator) DefineGroup(name string, members []string, def string) error {
	if len(members) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyGroup, name)
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m] {
			return fmt.Errorf("%w: member %q in group %s", ErrDuplicate, m, name)
		}
		seen[m] = true
	}
	if !seen[def] {
		return fmt.Errorf("%w: default %q in group %s", ErrInvalidMember, def, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.groups[name]; ok {
		return fmt.Errorf("%w: group %s", ErrDuplicate, name)
	}
	c.groups[name] = &group{members: slices.Clone(members), current: def}
	c.order = append(c.order, name)
	return nil
}

// DefineFlag registers an independent flag.
func (c *Coordinator) DefineFlag(name string, initial bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.flags[name]; ok {
		return fmt.Errorf("%w: flag %s", ErrDuplicate, name)
	}
	c.flags[name] = initial
	return nil
}

// SetGroupValue makes value the current member of the group. Selecting the
// member that is already current does nothing. Otherwise exactly one change
// is delivered to every subscriber before SetGroupValue returns.
func (c *Coordinator) SetGroupValue(name, value string) error {
	c.mu.Lock()
	g, ok := c.groups[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	if !slices.Contains(g.members, value) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q in group %s", ErrInvalidMember, value, name)
	}
	if g.current == value {
		c.mu.Unlock()
		return nil
	}
	prev := g.current
	g.current = value
	c.mu.Unlock()

	c.subs.notify(Change{Kind: GroupChanged, Name: name, Value: value, Previous: prev})
	return nil
}

// SetFlag stores v in the named flag, notifying subscribers when it changed.
func (c *Coordinator) SetFlag(name string, v bool) error {
	c.mu.Lock()
	cur, ok := c.flags[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFlag, name)
	}
	if cur == v {
		c.mu.Unlock()
		return nil
	}
	c.flags[name] = v
	c.mu.Unlock()

	c.subs.notify(Change{Kind: FlagChanged, Name: name, Flag: v})
	return nil
}

// Current returns the current member of a group, or "" if it is not defined.
func (c *Coordinator) Current(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if g, ok := c.groups[name]; ok {
		return g.current
	}
	return ""
}

// CurrentFlag returns the value of a flag; undefined flags read false.
func (c *Coordinator) CurrentFlag(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags[name]
}

// HasGroup reports whether a group is defined.
func (c *Coordinator) HasGroup(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.groups[name]
	return ok
}

// HasFlag reports whether a flag is defined.
func (c *Coordinator) HasFlag(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.flags[name]
	return ok
}

// Members returns the members of a group in definition order.
func (c *Coordinator) Members(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if g, ok := c.groups[name]; ok {
		return slices.Clone(g.members)
	}
	return nil
}

// Groups returns the defined group names in definition order.
func (c *Coordinator) Groups() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Subscribe registers fn for every change. The returned function removes it.
func (c *Coordinator) Subscribe(fn func(Change)) (unsubscribe func()) {
	return c.subs.add(fn)
}

// WatchGroup calls fn whenever the named group changes.
func (c *Coordinator) WatchGroup(name string, fn func()) (unwatch func()) {
	return c.Subscribe(func(ch Change) {
		if ch.Kind == GroupChanged && ch.Name == name {
			fn()
		}
	})
}

// WatchFlag calls fn whenever the named flag changes.
func (c *Coordinator) WatchFlag(name string, fn func()) (unwatch func()) {
	return c.Subscribe(func(ch Change) {
		if ch.Kind == FlagChanged && ch.Name == name {
			fn()
		}
	})
}

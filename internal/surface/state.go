package surface

import "log/slog"

// BoolState is the boolean a toggle-style binding latches.
type BoolState interface {
	Get() bool
	Set(v bool)
}

// LocalBool is a private boolean owned by one control.
type LocalBool struct {
	v bool
}

// NewLocalBool returns a LocalBool holding initial.
func NewLocalBool(initial bool) *LocalBool {
	return &LocalBool{v: initial}
}

func (b *LocalBool) Get() bool  { return b.v }
func (b *LocalBool) Set(v bool) { b.v = v }

// FlagBool binds to an independent flag held by a Coordinator, so every
// control watching the flag redraws when one of them changes it.
type FlagBool struct {
	c    *Coordinator
	name string
}

// NewFlagBool returns a BoolState backed by the named flag.
func NewFlagBool(c *Coordinator, name string) *FlagBool {
	return &FlagBool{c: c, name: name}
}

func (b *FlagBool) Get() bool { return b.c.CurrentFlag(b.name) }

func (b *FlagBool) Set(v bool) {
	if err := b.c.SetFlag(b.name, v); err != nil {
		slog.Error("flag update rejected", "flag", b.name, "err", err)
	}
}

// Watch calls fn whenever the flag changes.
func (b *FlagBool) Watch(fn func()) func() {
	return b.c.WatchFlag(b.name, fn)
}

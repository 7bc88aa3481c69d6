package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormatCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator()
	require.NoError(t, c.DefineGroup("Format", []string{"Format1", "Format2", "Format3"}, "Format1"))
	require.NoError(t, c.DefineFlag("MIDI", false))
	return c
}

func TestCoordinatorDefaults(t *testing.T) {
	c := newFormatCoordinator(t)
	assert.Equal(t, "Format1", c.Current("Format"))
	assert.False(t, c.CurrentFlag("MIDI"))
	assert.Equal(t, []string{"Format1", "Format2", "Format3"}, c.Members("Format"))
	assert.Equal(t, []string{"Format"}, c.Groups())
}

func TestCoordinatorDefineErrors(t *testing.T) {
	c := NewCoordinator()
	assert.ErrorIs(t, c.DefineGroup("Empty", nil, ""), ErrEmptyGroup)
	assert.ErrorIs(t, c.DefineGroup("Bad", []string{"a", "b"}, "c"), ErrInvalidMember)
	assert.ErrorIs(t, c.DefineGroup("Dup", []string{"a", "a"}, "a"), ErrDuplicate)

	require.NoError(t, c.DefineGroup("Rate", []string{"48k", "96k"}, "48k"))
	assert.ErrorIs(t, c.DefineGroup("Rate", []string{"x"}, "x"), ErrDuplicate)

	require.NoError(t, c.DefineFlag("Video", false))
	assert.ErrorIs(t, c.DefineFlag("Video", true), ErrDuplicate)
}

func TestSetGroupValueNotifiesOnce(t *testing.T) {
	c := newFormatCoordinator(t)

	var got []Change
	c.Subscribe(func(ch Change) { got = append(got, ch) })

	require.NoError(t, c.SetGroupValue("Format", "Format3"))
	assert.Equal(t, "Format3", c.Current("Format"))
	require.Len(t, got, 1)
	assert.Equal(t, Change{Kind: GroupChanged, Name: "Format", Value: "Format3", Previous: "Format1"}, got[0])

	require.NoError(t, c.SetGroupValue("Format", "Format3"))
	assert.Len(t, got, 1, "re-selecting the current member must not broadcast")
}

func TestSetGroupValueRejectsInvalid(t *testing.T) {
	c := newFormatCoordinator(t)

	calls := 0
	c.Subscribe(func(Change) { calls++ })

	assert.ErrorIs(t, c.SetGroupValue("Format", "Format9"), ErrInvalidMember)
	assert.ErrorIs(t, c.SetGroupValue("Nope", "Format1"), ErrUnknownGroup)
	assert.Equal(t, "Format1", c.Current("Format"))
	assert.Zero(t, calls)
}

func TestSetFlag(t *testing.T) {
	c := newFormatCoordinator(t)

	var got []Change
	c.Subscribe(func(ch Change) { got = append(got, ch) })

	require.NoError(t, c.SetFlag("MIDI", true))
	assert.True(t, c.CurrentFlag("MIDI"))
	require.NoError(t, c.SetFlag("MIDI", true))
	require.Len(t, got, 1)
	assert.Equal(t, FlagChanged, got[0].Kind)
	assert.True(t, got[0].Flag)

	assert.ErrorIs(t, c.SetFlag("Nope", true), ErrUnknownFlag)
	assert.Len(t, got, 1)
}

func TestSubscribersRunInRegistrationOrderBeforeReturn(t *testing.T) {
	c := newFormatCoordinator(t)

	var order []int
	for i := 0; i < 3; i++ {
		c.Subscribe(func(ch Change) {
			// the group has settled by the time anyone hears about it
			assert.Equal(t, "Format2", c.Current("Format"))
			order = append(order, i)
		})
	}

	require.NoError(t, c.SetGroupValue("Format", "Format2"))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestUnsubscribe(t *testing.T) {
	c := newFormatCoordinator(t)

	calls := 0
	stop := c.Subscribe(func(Change) { calls++ })
	require.NoError(t, c.SetGroupValue("Format", "Format2"))
	stop()
	stop()
	require.NoError(t, c.SetGroupValue("Format", "Format3"))
	assert.Equal(t, 1, calls)
	assert.Zero(t, c.subs.len())
}

func TestWatchFiltersByName(t *testing.T) {
	c := newFormatCoordinator(t)
	require.NoError(t, c.DefineGroup("Source", []string{"Track", "Item"}, "Track"))

	format, source, midi := 0, 0, 0
	c.WatchGroup("Format", func() { format++ })
	c.WatchGroup("Source", func() { source++ })
	c.WatchFlag("MIDI", func() { midi++ })

	require.NoError(t, c.SetGroupValue("Source", "Item"))
	require.NoError(t, c.SetFlag("MIDI", true))
	assert.Equal(t, 0, format)
	assert.Equal(t, 1, source)
	assert.Equal(t, 1, midi)
}

func TestCoordinatorSendsNoMessages(t *testing.T) {
	c := newFormatCoordinator(t)
	gw := &recorder{}
	rd := &redraws{}

	controls := []*Control{
		NewControl("f1", "WAV", NewGroupSelect(c, "Format", "Format1", gw), Visual{}, rd),
		NewControl("f2", "MP3", NewGroupSelect(c, "Format", "Format2", gw), Visual{}, rd),
		NewControl("f3", "FLAC", NewGroupSelect(c, "Format", "Format3", gw), Visual{}, rd),
	}

	require.NoError(t, c.SetGroupValue("Format", "Format3"))
	assert.Empty(t, gw.msgs)
	assert.False(t, controls[0].Active())
	assert.False(t, controls[1].Active())
	assert.True(t, controls[2].Active())
	for _, ctl := range controls {
		assert.Equal(t, 1, rd.count(ctl.ID()))
	}
}

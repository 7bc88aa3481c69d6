package surface

import (
	"log/slog"
	"slices"
)

// GroupSelect is a button bound to one member of a selection group.
type GroupSelect struct {
	c      *Coordinator
	group  string
	member string
	gw     Gateway
}

// NewGroupSelect creates a selector for member of group.
func NewGroupSelect(c *Coordinator, group, member string, gw Gateway) *GroupSelect {
	return &GroupSelect{c: c, group: group, member: member, gw: gw}
}

// Press selects the member and sends <Group>/<Member>/Toggle. A member the
// group does not know is logged and nothing is sent.
func (s *GroupSelect) Press() bool {
	if err := s.c.SetGroupValue(s.group, s.member); err != nil {
		slog.Error("selection rejected", "group", s.group, "member", s.member, "err", err)
		return false
	}
	s.gw.Send(Address{Group: s.group, Name: s.member}.Toggle(), On)
	return false
}

func (s *GroupSelect) Rotate(int) bool { return false }

func (s *GroupSelect) Active() bool { return s.c.Current(s.group) == s.member }

func (s *GroupSelect) Watch(fn func()) func() { return s.c.WatchGroup(s.group, fn) }

// GroupDial walks the members of a selection group in definition order,
// clamped at both ends.
type GroupDial struct {
	c     *Coordinator
	group string
	gw    Gateway
}

// NewGroupDial creates a dial over group.
func NewGroupDial(c *Coordinator, group string, gw Gateway) *GroupDial {
	return &GroupDial{c: c, group: group, gw: gw}
}

// Rotate moves by ticks members. When the selection moves it sends
// <Group>/<Member>/Toggle for the new member.
func (d *GroupDial) Rotate(ticks int) bool {
	members := d.c.Members(d.group)
	if len(members) == 0 {
		slog.Error("dial bound to unknown group", "group", d.group)
		return false
	}
	cur := max(slices.Index(members, d.c.Current(d.group)), 0)
	next := min(max(cur+ticks, 0), len(members)-1)
	if next == cur {
		return false
	}
	if err := d.c.SetGroupValue(d.group, members[next]); err != nil {
		slog.Error("selection rejected", "group", d.group, "member", members[next], "err", err)
		return false
	}
	d.gw.Send(Address{Group: d.group, Name: members[next]}.Toggle(), On)
	return false
}

func (d *GroupDial) Press() bool { return false }

func (d *GroupDial) Active() bool { return false }

func (d *GroupDial) Watch(fn func()) func() { return d.c.WatchGroup(d.group, fn) }

func (d *GroupDial) Caption(label string) string {
	return label + "\n" + d.c.Current(d.group)
}

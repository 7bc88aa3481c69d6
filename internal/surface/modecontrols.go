package surface

// ModeToggle is the one control allowed to flip a Mode. It is local only and
// sends nothing; dependents pick up the new value when they next send.
type ModeToggle struct {
	mode *Mode
}

// NewModeToggle creates the toggle for m.
func NewModeToggle(m *Mode) *ModeToggle {
	return &ModeToggle{mode: m}
}

func (t *ModeToggle) Press() bool {
	t.mode.Toggle()
	return false
}

func (t *ModeToggle) Rotate(int) bool { return false }

func (t *ModeToggle) Active() bool { return t.mode.Alternate() }

func (t *ModeToggle) Watch(fn func()) func() { return t.mode.Watch(fn) }

func (t *ModeToggle) Caption(label string) string {
	return label + "\n" + t.mode.Current()
}

// ModePress sends <Group>/<ModeValue>/Toggle/<Param>, reading the mode at the
// moment of the press.
type ModePress struct {
	group string
	param string
	mode  *Mode
	gw    Gateway
}

// NewModePress creates a mode-dependent button.
func NewModePress(group, param string, m *Mode, gw Gateway) *ModePress {
	return &ModePress{group: group, param: param, mode: m, gw: gw}
}

// Address returns the address a press would send to right now.
func (p *ModePress) Address() string {
	return ModeToggleAddress(p.group, p.mode.Current(), p.param)
}

func (p *ModePress) Press() bool {
	p.gw.Send(p.Address(), On)
	return false
}

func (p *ModePress) Rotate(int) bool { return false }

func (p *ModePress) Active() bool { return false }

func (p *ModePress) Watch(fn func()) func() { return p.mode.Watch(fn) }

func (p *ModePress) Caption(label string) string {
	return label + "\n" + p.mode.Current()
}

package surface

// Toggle is a binary latch bound to <Group>/<Name>/Toggle. State is updated
// optimistically: it flips even if the gateway later drops the message.
type Toggle struct {
	addr  Address
	state BoolState
	gw    Gateway
}

// NewToggle creates a toggle. A nil state gets a private boolean.
func NewToggle(addr Address, state BoolState, gw Gateway) *Toggle {
	if state == nil {
		state = NewLocalBool(false)
	}
	return &Toggle{addr: addr, state: state, gw: gw}
}

// Activate inverts the state and sends 1.0 when it is now on, 0.0 otherwise.
func (t *Toggle) Activate() {
	v := !t.state.Get()
	t.state.Set(v)
	t.gw.Send(t.addr.Toggle(), payload(v))
}

func (t *Toggle) Press() bool {
	t.Activate()
	return true
}

func (t *Toggle) Rotate(int) bool { return false }

func (t *Toggle) Active() bool { return t.state.Get() }

func (t *Toggle) Watch(fn func()) func() { return watch(t.state, fn) }

// ToggleDial is a dial whose direction chooses on (clockwise) or off
// (counterclockwise). Messages go out only on an actual transition.
type ToggleDial struct {
	addr  Address
	state BoolState
	gw    Gateway
	reset bool
}

// NewToggleDial creates a toggle dial. When reset is set, pressing the dial
// sends <Group>/<Name>_Reset.
func NewToggleDial(addr Address, state BoolState, gw Gateway, reset bool) *ToggleDial {
	if state == nil {
		state = NewLocalBool(false)
	}
	return &ToggleDial{addr: addr, state: state, gw: gw, reset: reset}
}

// Turn applies one movement and reports whether the state changed.
func (d *ToggleDial) Turn(dir Direction) bool {
	var want bool
	switch dir {
	case Clockwise:
		want = true
	case CounterClockwise:
		want = false
	default:
		return false
	}
	if d.state.Get() == want {
		return false
	}
	d.state.Set(want)
	d.gw.Send(d.addr.Toggle(), payload(want))
	return true
}

func (d *ToggleDial) Rotate(ticks int) bool { return d.Turn(DirectionOf(ticks)) }

func (d *ToggleDial) Press() bool {
	if d.reset {
		d.gw.Send(d.addr.Reset(), On)
	}
	return false
}

func (d *ToggleDial) Active() bool { return d.state.Get() }

func (d *ToggleDial) Watch(fn func()) func() { return watch(d.state, fn) }

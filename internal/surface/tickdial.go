package surface

// TickDial drives increase/decrease addresses through a TickTranslator. Every
// step is its own message with payload 1.0; the DAW counts events.
type TickDial struct {
	addr  DialAddress
	tr    TickTranslator
	gw    Gateway
	reset bool
}

// NewTickDial creates a tick dial with the given acceleration factor.
func NewTickDial(addr DialAddress, factor float64, gw Gateway, reset bool) *TickDial {
	return &TickDial{addr: addr, tr: NewTickTranslator(factor), gw: gw, reset: reset}
}

// Factor returns the configured acceleration.
func (d *TickDial) Factor() float64 { return d.tr.Factor }

// ApplyTicks emits floor(|rawTicks| * factor) increase or decrease messages
// and returns how many were sent.
func (d *TickDial) ApplyTicks(rawTicks int, factor float64) int {
	dir, n := NewTickTranslator(factor).Translate(rawTicks)
	if n == 0 {
		return 0
	}
	address := d.addr.Increase()
	if dir == CounterClockwise {
		address = d.addr.Decrease()
	}
	for i := 0; i < n; i++ {
		d.gw.Send(address, On)
	}
	return n
}

func (d *TickDial) Rotate(ticks int) bool {
	d.ApplyTicks(ticks, d.tr.Factor)
	return false
}

func (d *TickDial) Press() bool {
	if d.reset {
		d.gw.Send(d.addr.Reset(), On)
	}
	return false
}

func (d *TickDial) Active() bool { return false }

func (d *TickDial) Watch(fn func()) func() { return watch(d.addr, fn) }

func (d *TickDial) Caption(label string) string {
	if cp, ok := d.addr.(captioner); ok {
		return cp.Caption(label)
	}
	return label
}

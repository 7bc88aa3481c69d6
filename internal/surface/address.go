package surface

// Address is the <Group>/<Name> pair most controls are bound to.
type Address struct {
	Group string
	Name  string
}

// Toggle returns <Group>/<Name>/Toggle.
func (a Address) Toggle() string { return join(a.Group, a.Name, "Toggle") }

// Increase returns <Group>/<Name>_Right.
func (a Address) Increase() string { return join(a.Group, a.Name+"_Right") }

// Decrease returns <Group>/<Name>_Left.
func (a Address) Decrease() string { return join(a.Group, a.Name+"_Left") }

// Reset returns <Group>/<Name>_Reset.
func (a Address) Reset() string { return join(a.Group, a.Name+"_Reset") }

// DialAddress builds the addresses a tick dial sends to.
type DialAddress interface {
	Increase() string
	Decrease() string
	Reset() string
}

// ModeAddress qualifies dial addresses with the current value of a Mode:
// <Group>/<ModeValue>/<Name>_Right. The reset address is not qualified.
type ModeAddress struct {
	Group string
	Name  string
	Mode  *Mode
}

func (a ModeAddress) Increase() string {
	return join(a.Group, a.Mode.Current(), a.Name+"_Right")
}

func (a ModeAddress) Decrease() string {
	return join(a.Group, a.Mode.Current(), a.Name+"_Left")
}

func (a ModeAddress) Reset() string {
	return Address{Group: a.Group, Name: a.Name}.Reset()
}

// Watch redraws dependents when the mode flips.
func (a ModeAddress) Watch(fn func()) func() { return a.Mode.Watch(fn) }

// Caption appends the current mode value to the label.
func (a ModeAddress) Caption(label string) string {
	return label + "\n" + a.Mode.Current()
}

// ModeToggleAddress returns <Group>/<ModeValue>/Toggle/<Param>.
func ModeToggleAddress(group, mode, param string) string {
	return join(group, mode, "Toggle", param)
}

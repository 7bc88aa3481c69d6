package surface

// Binding is the state strategy behind a control. Press and Rotate report
// whether the control's own face changed; faces that depend on shared state
// are refreshed through Watch instead.
type Binding interface {
	Press() bool
	Rotate(ticks int) bool
	Active() bool
}

// watcher is implemented by bindings (and address policies) that depend on
// coordinator-held state.
type watcher interface {
	Watch(fn func()) (unwatch func())
}

// captioner lets a binding put its state into the face text.
type captioner interface {
	Caption(label string) string
}

func watch(v any, fn func()) func() {
	if w, ok := v.(watcher); ok {
		return w.Watch(fn)
	}
	return func() {}
}

// Control binds one physical button or dial to a Binding and a Visual policy.
type Control struct {
	id      string
	label   string
	binding Binding
	visual  Visual
	redraw  Redrawer
	unwatch func()
}

// NewControl creates a control. If the binding depends on shared state the
// control subscribes to it until Close is called. A nil redrawer is allowed.
func NewControl(id, label string, b Binding, v Visual, r Redrawer) *Control {
	c := &Control{
		id:      id,
		label:   label,
		binding: b,
		visual:  v,
		redraw:  r,
	}
	c.unwatch = watch(b, c.requestRedraw)
	return c
}

func (c *Control) ID() string       { return c.id }
func (c *Control) Label() string    { return c.label }
func (c *Control) Binding() Binding { return c.binding }

// Press handles a button press.
func (c *Control) Press() {
	if c.binding.Press() {
		c.requestRedraw()
	}
}

// Rotate handles a signed number of dial ticks; positive is clockwise.
func (c *Control) Rotate(ticks int) {
	if ticks == 0 {
		return
	}
	if c.binding.Rotate(ticks) {
		c.requestRedraw()
	}
}

// Active reports the binding's latched state.
func (c *Control) Active() bool { return c.binding.Active() }

// Face returns the control's current face.
func (c *Control) Face() Face {
	text := c.label
	if cp, ok := c.binding.(captioner); ok {
		text = cp.Caption(c.label)
	}
	return c.visual.Face(text, c.binding.Active())
}

// Close drops the control's subscriptions.
func (c *Control) Close() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
}

func (c *Control) requestRedraw() {
	if c.redraw != nil {
		c.redraw.RequestRedraw(c.id)
	}
}

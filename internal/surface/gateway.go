// Package surface turns control gestures into protocol messages and keeps the
// faces of controls that share state consistent with each other.
//
// Gestures are expected one at a time from a single dispatch goroutine. The
// coordinators notify subscribers synchronously, in registration order, before
// the mutating call returns. A subscriber must not mutate the state it is
// being notified about; nothing guards against the resulting re-entrant chain.
package surface

import "strings"

// Payloads used on every address.
const (
	On  = 1.0
	Off = 0.0
)

// Gateway delivers protocol messages to the DAW. Send must not block and never
// reports failure to the caller; the implementation logs what it drops.
type Gateway interface {
	Send(address string, value float64)
}

// GatewayFunc adapts a plain function to Gateway.
type GatewayFunc func(address string, value float64)

// Send calls f.
func (f GatewayFunc) Send(address string, value float64) { f(address, value) }

// Redrawer is told that a control's face may have changed. It is advisory:
// implementations without a visual layer simply ignore it.
type Redrawer interface {
	RequestRedraw(controlID string)
}

// RedrawFunc adapts a plain function to Redrawer.
type RedrawFunc func(controlID string)

// RequestRedraw calls f.
func (f RedrawFunc) RequestRedraw(controlID string) { f(controlID) }

func payload(v bool) float64 {
	if v {
		return On
	}
	return Off
}

func join(parts ...string) string {
	return strings.Join(parts, "/")
}

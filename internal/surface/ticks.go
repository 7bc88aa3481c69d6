package surface

import "math"

// Direction of a dial movement.
type Direction int

const (
	CounterClockwise Direction = -1
	Still            Direction = 0
	Clockwise        Direction = 1
)

// DirectionOf returns the direction of a signed tick count.
func DirectionOf(ticks int) Direction {
	switch {
	case ticks > 0:
		return Clockwise
	case ticks < 0:
		return CounterClockwise
	default:
		return Still
	}
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "still"
	}
}

func usableFactor(f float64) bool {
	return f >= 1 && !math.IsInf(f, 0)
}

// Steps scales the magnitude of rawTicks by factor and floors it. Factors
// below 1, infinite or NaN are treated as 1.
func Steps(rawTicks int, factor float64) int {
	if !usableFactor(factor) {
		factor = 1
	}
	return int(math.Floor(math.Abs(float64(rawTicks)) * factor))
}

// TickTranslator converts bursts of raw dial ticks into discrete steps. Each
// call stands alone: fractional remainders are dropped, not carried.
type TickTranslator struct {
	Factor float64
}

// NewTickTranslator returns a translator with the given acceleration. Factors
// below 1, infinite or NaN become 1.
func NewTickTranslator(factor float64) TickTranslator {
	if !usableFactor(factor) {
		factor = 1
	}
	return TickTranslator{Factor: factor}
}

// Translate returns the direction and number of steps for rawTicks.
func (t TickTranslator) Translate(rawTicks int) (Direction, int) {
	n := Steps(rawTicks, t.Factor)
	if n == 0 {
		return Still, 0
	}
	return DirectionOf(rawTicks), n
}

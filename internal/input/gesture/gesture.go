// Package gesture recognizes circular and round-trip gestures from the
// stream of directions a swiping finger goes through.
//
// Directions are in 16ths of a turn, clockwise, 0 being up. A gesture
// starts as a swipe. Moving at least RotationThreshold directions away in
// one sense starts a rotation; reversing the sense cancels it. Coming back
// to the center of the key ends a swipe as a round trip.
package gesture

import "strconv"

// Directions is the number of directions in a full turn.
const Directions = 16

// RotationThreshold is the direction change needed before a swipe turns
// into a rotation. Lower values make back and forth movements across the
// small direction sectors register as rotations.
const RotationThreshold = 2

// State is the state of a Recognizer.
type State uint8

const (
	Cancelled State = iota
	Swiped
	RotatingClockwise
	RotatingAnticlockwise
	EndedSwipe
	EndedCenter
	EndedClockwise
	EndedAnticlockwise
)

var stateNames = [...]string{
	Cancelled:             "Cancelled",
	Swiped:                "Swiped",
	RotatingClockwise:     "RotatingClockwise",
	RotatingAnticlockwise: "RotatingAnticlockwise",
	EndedSwipe:            "EndedSwipe",
	EndedCenter:           "EndedCenter",
	EndedClockwise:        "EndedClockwise",
	EndedAnticlockwise:    "EndedAnticlockwise",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Type is the gesture a Recognizer currently recognizes.
type Type uint8

const (
	None Type = iota
	Swipe
	Roundtrip
	Circle
	Anticircle
)

var typeNames = [...]string{
	None:       "None",
	Swipe:      "Swipe",
	Roundtrip:  "Roundtrip",
	Circle:     "Circle",
	Anticircle: "Anticircle",
}

// String returns the gesture name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Recognizer tracks one finger's gesture. The zero value is not usable;
// create one with New.
type Recognizer struct {
	dir   int
	state State
}

// New starts a gesture at the given direction.
func New(direction int) *Recognizer {
	return &Recognizer{dir: mod(direction), state: Swiped}
}

// State returns the current state.
func (g *Recognizer) State() State { return g.state }

// Direction returns the direction that caused the last state change.
func (g *Recognizer) Direction() int { return g.dir }

// ChangedDirection records a new direction. It returns true when the
// recognized gesture changed.
func (g *Recognizer) ChangedDirection(direction int) bool {
	direction = mod(direction)
	d := DirDiff(g.dir, direction)
	if d == 0 {
		return false
	}
	clockwise := d > 0
	switch g.state {
	case Swiped:
		if abs(d) < RotationThreshold {
			return false
		}
		if clockwise {
			g.state = RotatingClockwise
		} else {
			g.state = RotatingAnticlockwise
		}
		g.dir = direction
		return true
	case RotatingClockwise, RotatingAnticlockwise:
		g.dir = direction
		if (g.state == RotatingClockwise) == clockwise {
			return false
		}
		g.state = Cancelled
		return true
	}
	return false
}

// MovedToCenter records that the finger came back to the key's center.
func (g *Recognizer) MovedToCenter() {
	switch g.state {
	case Swiped:
		g.state = EndedCenter
	case RotatingClockwise:
		g.state = EndedClockwise
	case RotatingAnticlockwise:
		g.state = EndedAnticlockwise
	}
}

// PointerUp records that the finger was lifted.
func (g *Recognizer) PointerUp() {
	switch g.state {
	case Swiped:
		g.state = EndedSwipe
	case RotatingClockwise:
		g.state = EndedClockwise
	case RotatingAnticlockwise:
		g.state = EndedAnticlockwise
	}
}

// InProgress reports whether the gesture can still change.
func (g *Recognizer) InProgress() bool {
	switch g.state {
	case Swiped, RotatingClockwise, RotatingAnticlockwise:
		return true
	}
	return false
}

// Type returns the recognized gesture.
func (g *Recognizer) Type() Type {
	switch g.state {
	case Swiped, EndedSwipe:
		return Swipe
	case EndedCenter:
		return Roundtrip
	case RotatingClockwise, EndedClockwise:
		return Circle
	case RotatingAnticlockwise, EndedAnticlockwise:
		return Anticircle
	}
	return None
}

// DirDiff returns the signed shortest rotation from a to b, positive when
// clockwise. Opposite directions count as clockwise.
func DirDiff(a, b int) int {
	a, b = mod(a), mod(b)
	if a == b {
		return 0
	}
	left := (a - b + Directions) % Directions
	right := (b - a + Directions) % Directions
	if left < right {
		return -left
	}
	return right
}

func mod(d int) int {
	d %= Directions
	if d < 0 {
		d += Directions
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

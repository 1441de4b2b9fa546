package keyboard

import "fmt"

// TouchAction is the phase of a touch.
type TouchAction uint8

const (
	// TouchDown is a finger touching the keyboard.
	TouchDown TouchAction = iota

	// TouchMove is a finger moving.
	TouchMove

	// TouchUp is a finger lifted.
	TouchUp

	// TouchCancel is a touch aborted by the platform.
	TouchCancel
)

// String returns the action name.
func (a TouchAction) String() string {
	switch a {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	case TouchCancel:
		return "cancel"
	default:
		return fmt.Sprintf("TouchAction(%d)", a)
	}
}

// Touch is one event of the touch stream. Positions are in pixels relative
// to the top left corner of the keyboard.
type Touch struct {
	Action TouchAction
	ID     int
	X, Y   float64
}

package pointer

import "time"

// Config holds the timing and distance settings of Pointers.
type Config struct {
	// SwipeDistance is the Manhattan distance in pixels a finger must
	// travel before the key's corner values are selected.
	SwipeDistance float64

	// LongPressTimeout is the delay before the first repeat or long press.
	LongPressTimeout time.Duration

	// LongPressInterval is the delay between repeats.
	LongPressInterval time.Duration

	// KeyRepeat enables auto-repeat of held keys.
	KeyRepeat bool

	// PreciseRepeat modulates the repeat speed of sliders by the distance
	// of the finger.
	PreciseRepeat bool

	// Gestures enables circle and round-trip gestures.
	Gestures bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		SwipeDistance:     30,
		LongPressTimeout:  600 * time.Millisecond,
		LongPressInterval: 65 * time.Millisecond,
		KeyRepeat:         true,
		PreciseRepeat:     true,
		Gestures:          true,
	}
}

const (
	minRepeatSpeed = 0.1
	maxRepeatSpeed = 8.0
)

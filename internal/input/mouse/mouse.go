package mouse

import (
	"sync"

	"github.com/dshills/swipekey/internal/input/keyboard"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

// fingers are the buttons acting as fingers, in touch order.
var fingers = [...]Button{ButtonLeft, ButtonMiddle, ButtonRight}

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// ButtonMask is the set of held buttons.
type ButtonMask uint8

// Buttons returns the mask holding bs.
func Buttons(bs ...Button) ButtonMask {
	var m ButtonMask
	for _, b := range bs {
		m |= 1 << b
	}
	return m
}

// Has reports whether b is held.
func (m ButtonMask) Has(b Button) bool {
	return m&(1<<b) != 0
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a mouse input event: the pointer position and the
// buttons held at that time.
type Event struct {
	Position Position
	Buttons  ButtonMask
}

// Config configures the conversion from cells to pixels.
type Config struct {
	// CellWidth is the width of a cell in pixels.
	CellWidth float64

	// CellHeight is the height of a cell in pixels.
	CellHeight float64
}

// DefaultConfig returns the size of a typical terminal cell.
func DefaultConfig() Config {
	return Config{
		CellWidth:  10,
		CellHeight: 20,
	}
}

// Translator converts mouse events into touches.
type Translator struct {
	mu     sync.Mutex
	config Config
	origin Position
	drags  map[Button]*dragTracker
}

// NewTranslator creates a translator with the given configuration.
func NewTranslator(config Config) *Translator {
	return &Translator{
		config: config,
		drags:  make(map[Button]*dragTracker),
	}
}

// SetOrigin sets the cell of the top left corner of the keyboard.
func (t *Translator) SetOrigin(p Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.origin = p
}

// ToPixels returns the pixel position of the center of a cell, relative
// to the keyboard.
func (t *Translator) ToPixels(p Position) (x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.toPixels(p)
}

func (t *Translator) toPixels(p Position) (x, y float64) {
	x = (float64(p.X-t.origin.X) + 0.5) * t.config.CellWidth
	y = (float64(p.Y-t.origin.Y) + 0.5) * t.config.CellHeight
	return x, y
}

// Translate returns the touches caused by ev. A finger is identified by
// its button.
func (t *Translator) Translate(ev Event) []keyboard.Touch {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []keyboard.Touch
	for _, b := range fingers {
		d := t.drags[b]
		held := ev.Buttons.Has(b)
		switch {
		case held && d == nil:
			t.drags[b] = newDragTracker(b, ev.Position)
			out = append(out, t.touch(keyboard.TouchDown, b, ev.Position))
		case held && d.update(ev.Position):
			out = append(out, t.touch(keyboard.TouchMove, b, ev.Position))
		case !held && d != nil:
			delete(t.drags, b)
			out = append(out, t.touch(keyboard.TouchUp, b, d.currentPos))
		}
	}
	return out
}

// Cancel aborts every touch in progress, for example when the keyboard
// is resized.
func (t *Translator) Cancel() []keyboard.Touch {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []keyboard.Touch
	for _, b := range fingers {
		if d, ok := t.drags[b]; ok {
			delete(t.drags, b)
			out = append(out, t.touch(keyboard.TouchCancel, b, d.currentPos))
		}
	}
	return out
}

// Dragged returns how far the finger of b moved since it went down, in
// cells.
func (t *Translator) Dragged(b Button) (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.drags[b]
	if !ok {
		return Position{}, false
	}
	return d.getDelta(), true
}

func (t *Translator) touch(action keyboard.TouchAction, b Button, p Position) keyboard.Touch {
	x, y := t.toPixels(p)
	return keyboard.Touch{Action: action, ID: int(b), X: x, Y: y}
}

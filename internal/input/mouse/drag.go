package mouse

// dragTracker tracks the finger of one held button.
type dragTracker struct {
	button     Button
	startPos   Position
	currentPos Position
}

// newDragTracker starts a drag of button at pos.
func newDragTracker(button Button, pos Position) *dragTracker {
	return &dragTracker{button: button, startPos: pos, currentPos: pos}
}

// update moves the drag to pos and reports whether it moved.
func (t *dragTracker) update(pos Position) bool {
	if t.currentPos.Equal(pos) {
		return false
	}
	t.currentPos = pos
	return true
}

// getDelta returns the distance dragged from start.
func (t *dragTracker) getDelta() Position {
	return Position{
		X: t.currentPos.X - t.startPos.X,
		Y: t.currentPos.Y - t.startPos.Y,
	}
}

package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirDiff(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, -1},
		{15, 0, 1},
		{0, 15, -1},
		{0, 8, 8},
		{4, 12, 8},
		{2, 14, -4},
		{14, 2, 4},
		{-1, 1, 2},
		{17, 0, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DirDiff(tt.a, tt.b), "DirDiff(%d, %d)", tt.a, tt.b)
	}
}

func TestSwipeBelowThresholdKeepsState(t *testing.T) {
	for start := 0; start < Directions; start++ {
		for _, d := range []int{-1, 0, 1} {
			g := New(start)
			assert.False(t, g.ChangedDirection(start+d))
			assert.Equal(t, Swiped, g.State())
			assert.Equal(t, start, g.Direction())
		}
	}
}

func TestSwipeAtThresholdStartsRotation(t *testing.T) {
	for start := 0; start < Directions; start++ {
		for d := RotationThreshold; d < Directions/2; d++ {
			g := New(start)
			assert.True(t, g.ChangedDirection(start+d))
			assert.Equal(t, RotatingClockwise, g.State(), "start %d, +%d", start, d)
			assert.Equal(t, (start+d)%Directions, g.Direction())

			g = New(start)
			assert.True(t, g.ChangedDirection(start-d))
			assert.Equal(t, RotatingAnticlockwise, g.State(), "start %d, -%d", start, d)
		}
	}
}

func TestRotationContinues(t *testing.T) {
	g := New(0)
	g.ChangedDirection(2)
	assert.False(t, g.ChangedDirection(3))
	assert.False(t, g.ChangedDirection(5))
	assert.False(t, g.ChangedDirection(5))
	assert.Equal(t, RotatingClockwise, g.State())
	assert.Equal(t, Circle, g.Type())
	assert.True(t, g.InProgress())
}

func TestRotationReversalCancels(t *testing.T) {
	g := New(4)
	g.ChangedDirection(1)
	assert.Equal(t, RotatingAnticlockwise, g.State())
	assert.True(t, g.ChangedDirection(2))
	assert.Equal(t, Cancelled, g.State())
	assert.Equal(t, None, g.Type())
	assert.False(t, g.InProgress())

	assert.False(t, g.ChangedDirection(10))
	g.PointerUp()
	g.MovedToCenter()
	assert.Equal(t, Cancelled, g.State())
}

func TestMovedToCenter(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  State
		typ   Type
	}{
		{"roundtrip", nil, EndedCenter, Roundtrip},
		{"clockwise", []int{2}, EndedClockwise, Circle},
		{"anticlockwise", []int{14}, EndedAnticlockwise, Anticircle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(0)
			for _, m := range tt.moves {
				g.ChangedDirection(m)
			}
			g.MovedToCenter()
			assert.Equal(t, tt.want, g.State())
			assert.Equal(t, tt.typ, g.Type())
			assert.False(t, g.InProgress())
		})
	}
}

func TestPointerUp(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  State
		typ   Type
	}{
		{"swipe", nil, EndedSwipe, Swipe},
		{"clockwise", []int{3}, EndedClockwise, Circle},
		{"anticlockwise", []int{13}, EndedAnticlockwise, Anticircle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(0)
			for _, m := range tt.moves {
				g.ChangedDirection(m)
			}
			g.PointerUp()
			assert.Equal(t, tt.want, g.State())
			assert.Equal(t, tt.typ, g.Type())
		})
	}
}

func TestEndedStatesAreTerminal(t *testing.T) {
	g := New(0)
	g.PointerUp()
	assert.False(t, g.ChangedDirection(4))
	g.MovedToCenter()
	assert.Equal(t, EndedSwipe, g.State())
}

func TestFullCircle(t *testing.T) {
	g := New(0)
	for d := 1; d <= Directions; d++ {
		g.ChangedDirection(d)
	}
	assert.Equal(t, RotatingClockwise, g.State())
	g.PointerUp()
	assert.Equal(t, Circle, g.Type())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "EndedCenter", EndedCenter.String())
	assert.Equal(t, "Anticircle", Anticircle.String())
	assert.Equal(t, "State(42)", State(42).String())
}

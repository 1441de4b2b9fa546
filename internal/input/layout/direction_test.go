package layout

import "testing"

func TestOctant(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Direction
	}{
		{0, -10, North},
		{10, -10, NorthEast},
		{10, 0, East},
		{10, 10, SouthEast},
		{0, 10, South},
		{-10, 10, SouthWest},
		{-10, 0, West},
		{-10, -10, NorthWest},
		{3, -10, North},
		{-3, -10, North},
		{10, -3, East},
	}

	for _, tt := range tests {
		if got := Octant(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Octant(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestFine(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   int
	}{
		{0, -10, 0},
		{10, -10, 2},
		{10, 0, 4},
		{10, 10, 6},
		{0, 10, 8},
		{-10, 10, 10},
		{-10, 0, 12},
		{-10, -10, 14},
		{4, -10, 1},
		{-4, -10, 15},
	}

	for _, tt := range tests {
		if got := Fine(tt.dx, tt.dy); got != tt.want {
			t.Errorf("Fine(%v, %v) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestZone(t *testing.T) {
	if got := Zone(5, -5, 20); got != Center {
		t.Errorf("Zone below threshold = %v, want c", got)
	}
	if got := Zone(10, -10, 20); got != NorthEast {
		t.Errorf("Zone at threshold = %v, want ne", got)
	}
	if got := Zone(0, -30, 20); got != North {
		t.Errorf("Zone upwards = %v, want n", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		d    Direction
		n    int
		want Direction
	}{
		{North, 1, NorthEast},
		{North, -1, NorthWest},
		{NorthWest, 1, North},
		{East, -2, North},
		{South, 8, South},
		{West, -10, South},
		{Center, 3, Center},
	}

	for _, tt := range tests {
		if got := tt.d.Rotate(tt.n); got != tt.want {
			t.Errorf("%v.Rotate(%d) = %v, want %v", tt.d, tt.n, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for d := Center; d <= NorthWest; d++ {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("ParseDirection should reject long names")
	}
	if s := Direction(12).String(); s != "Direction(12)" {
		t.Errorf("String() = %q", s)
	}
}

package layout

import (
	"math"
	"strconv"
)

// Direction is a position on a key: its center or one of eight compass
// octants, numbered clockwise from north.
type Direction uint8

const (
	Center Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Octants is the number of swipe directions around the center.
const Octants = 8

// FineDirections is the resolution of Fine.
const FineDirections = 16

var directionNames = [...]string{
	Center:    "c",
	North:     "n",
	NorthEast: "ne",
	East:      "e",
	SouthEast: "se",
	South:     "s",
	SouthWest: "sw",
	West:      "w",
	NorthWest: "nw",
}

// String returns the short compass name of the direction.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// ParseDirection returns the direction with the given short name.
func ParseDirection(s string) (Direction, bool) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), true
		}
	}
	return Center, false
}

// IsOctant reports whether d is one of the eight swipe directions.
func (d Direction) IsOctant() bool {
	return d >= North && d <= NorthWest
}

// Rotate returns the octant n steps clockwise of d. Negative n rotates
// anticlockwise. Center and invalid directions are returned unchanged.
func (d Direction) Rotate(n int) Direction {
	if !d.IsOctant() {
		return d
	}
	i := (int(d) - 1 + n) % Octants
	if i < 0 {
		i += Octants
	}
	return Direction(i + 1)
}

// angle returns the clockwise angle of a movement from north, in radians.
// Screen coordinates grow downwards.
func angle(dx, dy float64) float64 {
	return math.Atan2(dx, -dy)
}

// Fine returns the direction of a movement on a 16 step compass, 0 being
// north and directions increasing clockwise.
func Fine(dx, dy float64) int {
	d := int(math.Round(angle(dx, dy) * FineDirections / (2 * math.Pi)))
	return ((d % FineDirections) + FineDirections) % FineDirections
}

// Octant returns the compass octant of a movement.
func Octant(dx, dy float64) Direction {
	d := int(math.Round(angle(dx, dy) * Octants / (2 * math.Pi)))
	return Direction((d%Octants+Octants)%Octants + 1)
}

// Distance returns the Manhattan length of a movement.
func Distance(dx, dy float64) float64 {
	return math.Abs(dx) + math.Abs(dy)
}

// Zone returns Center when a movement is shorter than threshold and its
// octant otherwise.
func Zone(dx, dy, threshold float64) Direction {
	if Distance(dx, dy) < threshold {
		return Center
	}
	return Octant(dx, dy)
}

package layout

import (
	"fmt"
	"strings"

	"github.com/dshills/swipekey/internal/input/key"
)

// Grid finds the key under a position. It returns nil when there is no key
// at that position.
type Grid interface {
	KeyAt(x, y float64) *Key
}

// Row is a row of keys.
type Row struct {
	Keys []*Key

	// Height is the row height in key units.
	Height float64

	// Shift is the empty space before the first key, in key units.
	Shift float64
}

// Width returns the row width in key units.
func (r Row) Width() float64 {
	w := r.Shift
	for _, k := range r.Keys {
		w += k.Shift + k.Width
	}
	return w
}

// Layout is an ordered set of rows.
type Layout struct {
	Name string
	Rows []Row
}

// ParseRows parses one row per line. Keys are separated by "|" and use the
// syntax of ParseKey; a literal bar is written \|. Blank lines are
// ignored.
func ParseRows(name, def string) (*Layout, error) {
	l := &Layout{Name: name}
	for i, line := range strings.Split(def, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := Row{Height: 1}
		for _, kd := range splitKeys(line) {
			k, err := ParseKey(kd)
			if err != nil {
				return nil, fmt.Errorf("layout %s line %d: %w", name, i+1, err)
			}
			row.Keys = append(row.Keys, k)
		}
		l.Rows = append(l.Rows, row)
	}
	return l, nil
}

// Width returns the width of the widest row, in key units.
func (l *Layout) Width() float64 {
	var w float64
	for _, r := range l.Rows {
		w = max(w, r.Width())
	}
	return w
}

// Height returns the sum of the row heights, in key units.
func (l *Layout) Height() float64 {
	var h float64
	for _, r := range l.Rows {
		h += r.Height
	}
	return h
}

// Keys returns every key, row by row.
func (l *Layout) Keys() []*Key {
	var keys []*Key
	for _, r := range l.Rows {
		keys = append(keys, r.Keys...)
	}
	return keys
}

// FindKey returns the first key holding v, or nil.
func (l *Layout) FindKey(v key.Value) *Key {
	for _, r := range l.Rows {
		for _, k := range r.Keys {
			if k.Has(v) {
				return k
			}
		}
	}
	return nil
}

// Rect is a rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point is inside r. The right and bottom
// edges are excluded.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Geometry places a Layout on a pixel area. It implements Grid.
type Geometry struct {
	layout *Layout
	unitW  float64
	unitH  float64
	rects  map[*Key]Rect
}

// NewGeometry scales l to fill a width by height pixel area.
func NewGeometry(l *Layout, width, height float64) *Geometry {
	g := &Geometry{layout: l, rects: make(map[*Key]Rect)}
	if lw := l.Width(); lw > 0 {
		g.unitW = width / lw
	}
	if lh := l.Height(); lh > 0 {
		g.unitH = height / lh
	}
	y := 0.0
	for _, r := range l.Rows {
		x := r.Shift * g.unitW
		h := r.Height * g.unitH
		for _, k := range r.Keys {
			x += k.Shift * g.unitW
			w := k.Width * g.unitW
			g.rects[k] = Rect{X: x, Y: y, W: w, H: h}
			x += w
		}
		y += h
	}
	return g
}

// Layout returns the placed layout.
func (g *Geometry) Layout() *Layout {
	return g.layout
}

// KeyWidth returns the width of one key unit in pixels.
func (g *Geometry) KeyWidth() float64 {
	return g.unitW
}

// KeyAt returns the key at the given position, or nil.
func (g *Geometry) KeyAt(x, y float64) *Key {
	top := 0.0
	for _, r := range g.layout.Rows {
		h := r.Height * g.unitH
		if y >= top && y < top+h {
			for _, k := range r.Keys {
				if g.rects[k].Contains(x, y) {
					return k
				}
			}
			return nil
		}
		top += h
	}
	return nil
}

// Bounds returns the rectangle of k.
func (g *Geometry) Bounds(k *Key) (Rect, bool) {
	r, ok := g.rects[k]
	return r, ok
}

// splitKeys splits a row on "|" outside single quotes.
func splitKeys(line string) []string {
	var keys []string
	var b strings.Builder
	quoted := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			b.WriteByte('|')
			i++
			continue
		case c == '\\' && i+1 < len(line):
			b.WriteByte(c)
			b.WriteByte(line[i+1])
			i++
			continue
		case c == '\'':
			quoted = !quoted
		case c == '|' && !quoted:
			keys = append(keys, b.String())
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	return append(keys, b.String())
}

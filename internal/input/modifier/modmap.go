package modifier

import (
	"strings"

	"github.com/dshills/swipekey/internal/input/key"
)

// Layer selects the modifier a Modmap entry applies under.
type Layer uint8

const (
	LayerShift Layer = iota
	LayerFn
	LayerCtrl
	LayerGesture

	layerCount
)

var layerNames = [...]string{
	LayerShift:   "shift",
	LayerFn:      "fn",
	LayerCtrl:    "ctrl",
	LayerGesture: "gesture",
}

// String returns the layer name.
func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "unknown"
}

// ParseLayer returns the layer with the given name.
func ParseLayer(name string) (Layer, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l := Layer(0); l < layerCount; l++ {
		if layerNames[l] == name {
			return l, true
		}
	}
	return 0, false
}

type mapping struct {
	from key.Value
	to   key.Value
}

// Modmap is a user-defined remapping of keys under a modifier. The zero
// value and a nil *Modmap are empty.
type Modmap struct {
	layers [layerCount][]mapping
}

// NewModmap returns an empty Modmap.
func NewModmap() *Modmap {
	return &Modmap{}
}

// Add maps from to to under layer. A later mapping of the same key replaces
// the earlier one.
func (m *Modmap) Add(layer Layer, from, to key.Value) {
	if layer >= layerCount {
		return
	}
	entries := m.layers[layer]
	for i := range entries {
		if entries[i].from.Equal(from) {
			entries[i].to = to
			return
		}
	}
	m.layers[layer] = append(entries, mapping{from: from, to: to})
}

// Get returns the mapping of v under layer.
func (m *Modmap) Get(layer Layer, v key.Value) (key.Value, bool) {
	if m == nil || layer >= layerCount {
		return key.None, false
	}
	for _, e := range m.layers[layer] {
		if e.from.Equal(v) {
			return e.to, true
		}
	}
	return key.None, false
}

// Len returns the total number of mappings.
func (m *Modmap) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, entries := range m.layers {
		n += len(entries)
	}
	return n
}

package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/swipekey/internal/input/key"
)

// ErrInvalidKey is wrapped by errors returned from ParseKey.
var ErrInvalidKey = errors.New("invalid layout key")

// Key is a physical key. Values is indexed by Direction.
type Key struct {
	Values [Octants + 1]key.Value

	// Anticircle is produced by an anticlockwise circle gesture. It may be
	// key.None.
	Anticircle key.Value

	// Width is the key width in key units.
	Width float64

	// Shift is the empty space left of the key, in key units.
	Shift float64
}

// NewKey returns a key of width 1 typing center.
func NewKey(center key.Value) *Key {
	k := &Key{Width: 1}
	k.Values[Center] = center
	return k
}

// Value returns the value at d, or key.None when d holds nothing.
func (k *Key) Value(d Direction) key.Value {
	if k == nil || int(d) >= len(k.Values) {
		return key.None
	}
	return k.Values[d]
}

// Has reports whether any of the key's values equals v.
func (k *Key) Has(v key.Value) bool {
	if k == nil {
		return false
	}
	for _, x := range k.Values {
		if x.Equal(v) {
			return true
		}
	}
	return k.Anticircle.Equal(v)
}

// String returns the key in the definition syntax, using symbols.
func (k *Key) String() string {
	if k == nil {
		return "<nil>"
	}
	var parts []string
	for d, v := range k.Values {
		if v.IsNone() {
			continue
		}
		parts = append(parts, Direction(d).String()+"="+v.Symbol())
	}
	return strings.Join(parts, " ")
}

// ParseKey parses a key definition, see the package documentation.
func ParseKey(def string) (*Key, error) {
	fields, err := splitFields(def)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidKey, def, err)
	}
	k := &Key{Width: 1}
	var seen [Octants + 1]bool
	for _, f := range fields {
		name, val, attr := cutAttribute(f)
		switch {
		case !attr:
			name, val = Center.String(), f
		case name == "width" || name == "shift":
			n, err := strconv.ParseFloat(val, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w %q: bad %s %q", ErrInvalidKey, def, name, val)
			}
			if name == "width" {
				k.Width = n
			} else {
				k.Shift = n
			}
			continue
		case name == "anticircle":
			v, err := parseValue(val)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidKey, def, err)
			}
			k.Anticircle = v
			continue
		}
		d, _ := ParseDirection(name)
		if seen[d] {
			return nil, fmt.Errorf("%w %q: direction %s defined twice", ErrInvalidKey, def, d)
		}
		seen[d] = true
		v, err := parseValue(val)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidKey, def, err)
		}
		k.Values[d] = v
	}
	return k, nil
}

// parseValue parses a key definition. A single character always types
// itself, so that ":" and "'" need no quoting.
func parseValue(def string) (key.Value, error) {
	if utf8.RuneCountInString(def) == 1 {
		return key.ByName(def), nil
	}
	return key.Parse(def)
}

// MustParseKey is like ParseKey but panics on error.
func MustParseKey(def string) *Key {
	k, err := ParseKey(def)
	if err != nil {
		panic(err)
	}
	return k
}

// cutAttribute splits "name=value" when name is a known attribute.
func cutAttribute(f string) (name, val string, ok bool) {
	name, val, found := strings.Cut(f, "=")
	if !found || name == "" {
		return "", "", false
	}
	if _, ok := ParseDirection(name); ok {
		return name, val, true
	}
	switch name {
	case "width", "shift", "anticircle":
		return name, val, true
	}
	return "", "", false
}

// splitFields splits s on whitespace outside single quotes. Outside quotes,
// a backslash before a quote or a space is dropped; other backslashes are
// kept for key.Parse.
func splitFields(s string) ([]string, error) {
	var fields []string
	var b strings.Builder
	quoted := false
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			next := rs[i+1]
			if quoted || (next != '\'' && next != ' ') {
				b.WriteRune(r)
			}
			b.WriteRune(next)
			i++
			continue
		case r == '\'':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			if b.Len() > 0 {
				fields = append(fields, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteRune(r)
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if b.Len() > 0 {
		fields = append(fields, b.String())
	}
	return fields, nil
}

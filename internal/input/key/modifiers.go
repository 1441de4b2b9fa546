package key

import (
	"slices"
	"strings"
)

// Modifiers is an immutable, canonically ordered set of active modifier
// values. Modifier keys are ordered by evaluation order, followed by
// compose-pending and Hangul values.
type Modifiers struct {
	values []Value
}

// NoModifiers is the empty set.
var NoModifiers = Modifiers{}

// NewModifiers builds a set from values. None values and values that cannot
// act as modifiers are dropped; duplicates are removed.
func NewModifiers(values ...Value) Modifiers {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		if IsModifierValue(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return NoModifiers
	}
	slices.SortStableFunc(out, compareModifierValues)
	out = slices.CompactFunc(out, func(a, b Value) bool {
		return a.kind == b.kind && a.code == b.code
	})
	return Modifiers{values: out}
}

// IsModifierValue reports whether v can be held in a Modifiers set.
func IsModifierValue(v Value) bool {
	switch v.kind {
	case KindModifier:
		return Modifier(v.code) != ModNone
	case KindComposePending, KindHangulInitial, KindHangulMedial:
		return true
	}
	return false
}

func modifierOrder(v Value) int {
	switch v.kind {
	case KindModifier:
		return Modifier(v.code).Rank()
	case KindComposePending:
		return len(evaluationOrder)
	case KindHangulInitial:
		return len(evaluationOrder) + 1
	case KindHangulMedial:
		return len(evaluationOrder) + 2
	}
	return len(evaluationOrder) + 3
}

func compareModifierValues(a, b Value) int {
	if c := cmpInt(modifierOrder(a), modifierOrder(b)); c != 0 {
		return c
	}
	return cmpInt(int(a.code), int(b.code))
}

// Len returns the number of values in the set.
func (m Modifiers) Len() int { return len(m.values) }

// At returns the i'th value in canonical order.
func (m Modifiers) At(i int) Value { return m.values[i] }

// Values returns the values in canonical order.
func (m Modifiers) Values() []Value { return slices.Clone(m.values) }

// Has reports whether the modifier mod is in the set.
func (m Modifiers) Has(mod Modifier) bool {
	for _, v := range m.values {
		if v.kind == KindModifier && Modifier(v.code) == mod {
			return true
		}
	}
	return false
}

// Contains reports whether a value with the same kind and payload as v is
// in the set.
func (m Modifiers) Contains(v Value) bool {
	for _, x := range m.values {
		if x.kind == v.kind && x.code == v.code {
			return true
		}
	}
	return false
}

// With returns a set that also holds v.
func (m Modifiers) With(v Value) Modifiers {
	return NewModifiers(append(slices.Clone(m.values), v)...)
}

// Without returns a set where values with the same kind and payload as v are
// removed.
func (m Modifiers) Without(v Value) Modifiers {
	out := make([]Value, 0, len(m.values))
	for _, x := range m.values {
		if x.kind != v.kind || x.code != v.code {
			out = append(out, x)
		}
	}
	return Modifiers{values: out}
}

// IsEmpty reports whether the set is empty.
func (m Modifiers) IsEmpty() bool { return len(m.values) == 0 }

// Equal reports whether both sets hold equal values.
func (m Modifiers) Equal(o Modifiers) bool {
	return slices.EqualFunc(m.values, o.values, Value.Equal)
}

// String returns the values joined by "+".
func (m Modifiers) String() string {
	if len(m.values) == 0 {
		return "none"
	}
	parts := make([]string, len(m.values))
	for i, v := range m.values {
		if v.kind == KindModifier {
			parts[i] = Modifier(v.code).String()
		} else {
			parts[i] = v.String()
		}
	}
	return strings.Join(parts, "+")
}

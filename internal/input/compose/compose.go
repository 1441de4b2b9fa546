package compose

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/swipekey/internal/input/key"
)

// ErrMalformedTable is returned when sequences cannot be compiled.
var ErrMalformedTable = errors.New("malformed compose table")

const stringLeaf = -1

// Sequence maps an input sequence to its result. A single code point result
// produces that character; longer results are resolved with key.ByName so
// they may name special keys such as "f1" or "nbsp".
type Sequence struct {
	Input  string
	Result string
}

// Source is a named list of sequences.
type Source struct {
	Name      string
	Sequences []Sequence
}

// Table is an immutable compiled set of compose tables.
type Table struct {
	states []int32
	edges  []int32
	roots  map[string]int
	names  []string
}

type node struct {
	children map[rune]*node
	result   string
	leaf     bool
}

// Compile builds a Table from sources. The first source is entered at
// state 0. Sequences within a source must be non-empty and no sequence may
// be a prefix of another.
func Compile(sources []Source) (*Table, error) {
	t := &Table{roots: make(map[string]int, len(sources))}
	for _, src := range sources {
		if _, dup := t.roots[src.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrMalformedTable, src.Name)
		}
		root, err := buildTrie(src)
		if err != nil {
			return nil, err
		}
		t.roots[src.Name] = len(t.states)
		t.names = append(t.names, src.Name)
		t.add(root)
	}
	return t, nil
}

func buildTrie(src Source) (*node, error) {
	root := &node{children: map[rune]*node{}}
	for _, seq := range src.Sequences {
		input := []rune(seq.Input)
		if len(input) == 0 {
			return nil, fmt.Errorf("%w: %s: empty sequence", ErrMalformedTable, src.Name)
		}
		if seq.Result == "" {
			return nil, fmt.Errorf("%w: %s: empty result for %q", ErrMalformedTable, src.Name, seq.Input)
		}
		n := root
		for i, c := range input {
			if n.leaf {
				return nil, fmt.Errorf("%w: %s: %q extends another sequence", ErrMalformedTable, src.Name, seq.Input)
			}
			next, ok := n.children[c]
			if !ok {
				next = &node{children: map[rune]*node{}}
				n.children[c] = next
			}
			if i == len(input)-1 {
				if next.leaf || len(next.children) > 0 {
					return nil, fmt.Errorf("%w: %s: %q conflicts with another sequence", ErrMalformedTable, src.Name, seq.Input)
				}
				next.leaf = true
				next.result = seq.Result
			}
			n = next
		}
	}
	return root, nil
}

func (t *Table) add(n *node) {
	if n.leaf {
		t.addLeaf(n.result)
		return
	}
	keys := make([]rune, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, c)
	}
	slices.Sort(keys)

	header := len(t.states)
	t.states = append(t.states, 0)
	t.edges = append(t.edges, int32(len(keys)+1))
	for _, c := range keys {
		t.states = append(t.states, int32(c))
		t.edges = append(t.edges, 0)
	}
	for i, c := range keys {
		t.edges[header+1+i] = int32(len(t.states))
		t.add(n.children[c])
	}
}

func (t *Table) addLeaf(result string) {
	runes := []rune(result)
	if len(runes) == 1 {
		t.states = append(t.states, int32(runes[0]))
		t.edges = append(t.edges, 1)
		return
	}
	t.states = append(t.states, stringLeaf)
	t.edges = append(t.edges, int32(len(runes)+1))
	for _, r := range runes {
		t.states = append(t.states, int32(r))
		t.edges = append(t.edges, 0)
	}
}

// Root returns the root state of the named table.
func (t *Table) Root(name string) (int, bool) {
	s, ok := t.roots[name]
	return s, ok
}

// Names returns the table names in compilation order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Len returns the number of cells in the compiled trie.
func (t *Table) Len() int {
	return len(t.states)
}

// ApplyChar feeds c to the node at state. It returns false when c does not
// extend any sequence. Otherwise the result is the sequence's result, or a
// compose-pending value holding the next node.
func (t *Table) ApplyChar(state int, c rune) (key.Value, bool) {
	if state < 0 || state >= len(t.states) || t.states[state] != 0 {
		return key.None, false
	}
	span := int(t.edges[state])
	cells := t.states[state+1 : state+span]
	i := sort.Search(len(cells), func(i int) bool { return cells[i] >= int32(c) })
	if i == len(cells) || cells[i] != int32(c) {
		return key.None, false
	}
	next := int(t.edges[state+1+i])
	switch header := t.states[next]; header {
	case 0:
		return key.MakeComposePending(string(c), next, 0), true
	case stringLeaf:
		n := int(t.edges[next])
		runes := make([]rune, n-1)
		for j := range runes {
			runes[j] = rune(t.states[next+1+j])
		}
		return key.ByName(string(runes)), true
	default:
		return key.MakeChar(rune(header)), true
	}
}

// ApplySequence feeds every character of s starting at state. It returns
// false as soon as a character does not match.
func (t *Table) ApplySequence(state int, s string) (key.Value, bool) {
	var v key.Value
	for _, c := range s {
		if v.Kind() == key.KindComposePending {
			state = v.ComposeState()
		} else if !v.IsNone() {
			return key.None, false
		}
		var ok bool
		if v, ok = t.ApplyChar(state, c); !ok {
			return key.None, false
		}
	}
	return v, !v.IsNone()
}

// Apply applies the pending sequence at state to v.
//
// Characters that continue a sequence are replaced by its result; other
// characters are greyed out. Events, modifiers and compose keys are
// returned unchanged so they stay usable. Other kinds cannot take part in
// a sequence and are greyed out.
func (t *Table) Apply(state int, v key.Value) key.Value {
	switch v.Kind() {
	case key.KindChar:
		if r, ok := t.ApplyChar(state, v.Char()); ok {
			return r
		}
	case key.KindString:
		if r, ok := t.ApplySequence(state, v.Text()); ok {
			return r
		}
	case key.KindEvent, key.KindModifier, key.KindComposePending:
		return v
	}
	return v.WithFlags(v.Flags() | key.FlagGreyed)
}

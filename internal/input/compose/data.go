package compose

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

//go:embed data/*.json
var dataFS embed.FS

// MainTable is the table used by the compose key. It is always compiled
// first so that its root is state 0.
const MainTable = "compose"

// Well-known table names.
const (
	ShiftTable = "shift"
	FnTable    = "fn"
)

// ParseJSON reads a table from a JSON object mapping input sequences to
// results.
func ParseJSON(name string, data []byte) (Source, error) {
	if !gjson.ValidBytes(data) {
		return Source{}, fmt.Errorf("%w: %s: invalid JSON", ErrMalformedTable, name)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Source{}, fmt.Errorf("%w: %s: expected an object", ErrMalformedTable, name)
	}
	src := Source{Name: name}
	var err error
	doc.ForEach(func(k, v gjson.Result) bool {
		if v.Type != gjson.String {
			err = fmt.Errorf("%w: %s: result of %q is not a string", ErrMalformedTable, name, k.String())
			return false
		}
		src.Sequences = append(src.Sequences, Sequence{Input: k.String(), Result: v.String()})
		return true
	})
	if err != nil {
		return Source{}, err
	}
	return src, nil
}

// EmbeddedSources returns the tables built into the program, the main
// compose table first.
func EmbeddedSources() ([]Source, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, err
	}
	var sources []Source
	for _, e := range entries {
		data, err := dataFS.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, err
		}
		src, err := ParseJSON(strings.TrimSuffix(e.Name(), ".json"), data)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	slices.SortStableFunc(sources, func(a, b Source) int {
		switch {
		case a.Name == MainTable:
			return -1
		case b.Name == MainTable:
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return sources, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table compiled from the embedded data. The embedded
// data is part of the program, so a compilation failure panics.
func Default() *Table {
	defaultOnce.Do(func() {
		sources, err := EmbeddedSources()
		if err != nil {
			panic("compose: " + err.Error())
		}
		t, err := Compile(sources)
		if err != nil {
			panic("compose: " + err.Error())
		}
		if root, ok := t.Root(MainTable); !ok || root != 0 {
			panic("compose: main table must be compiled at state 0")
		}
		defaultTable = t
	})
	return defaultTable
}

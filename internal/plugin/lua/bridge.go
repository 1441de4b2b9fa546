package lua

import (
	"fmt"
	"strings"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/swipekey/internal/input/key"
)

// Bridge converts key values between Go and Lua.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// KeyTable returns the Lua view of v:
//
//	{kind = "char", symbol = "a", char = "a", name = nil, keyevent = nil}
//
// kind is the lower-cased kind name. char holds the typed text of char and
// string keys, keyevent the key code of keyevents and name the name of named
// keys.
func (b *Bridge) KeyTable(v key.Value) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("kind", lua.LString(strings.ToLower(v.Kind().String())))
	t.RawSetString("symbol", lua.LString(v.Symbol()))
	switch v.Kind() {
	case key.KindChar, key.KindString:
		t.RawSetString("char", lua.LString(v.Text()))
	case key.KindKeyevent:
		t.RawSetString("keyevent", lua.LNumber(v.Keyevent()))
	}
	if name, ok := key.NameOf(v); ok {
		t.RawSetString("name", lua.LString(name))
	}
	return t
}

// ModsTable returns the active modifiers as a set keyed by modifier name,
// for example {shift = true}. Compose and Hangul states appear under their
// kind name.
func (b *Bridge) ModsTable(mods key.Modifiers) *lua.LTable {
	t := b.L.NewTable()
	for i := 0; i < mods.Len(); i++ {
		m := mods.At(i)
		name := strings.ToLower(m.Kind().String())
		if m.Kind() == key.KindModifier {
			name = m.Modifier().String()
		}
		t.RawSetString(name, lua.LTrue)
	}
	return t
}

// ToValue converts a hook result. nil means the hook did not decide, false
// means nothing is typed and a string is parsed as a key definition.
func (b *Bridge) ToValue(lv lua.LValue) (key.Value, bool, error) {
	switch r := lv.(type) {
	case *lua.LNilType:
		return key.None, false, nil
	case lua.LBool:
		if r {
			return key.None, false, fmt.Errorf("%w: true", ErrBadResult)
		}
		return key.None, true, nil
	case lua.LString:
		if r == "" {
			return key.None, true, nil
		}
		if utf8.RuneCountInString(string(r)) == 1 {
			return key.ByName(string(r)), true, nil
		}
		v, err := key.Parse(string(r))
		if err != nil {
			return key.None, false, fmt.Errorf("%w: %w", ErrBadResult, err)
		}
		return v, true, nil
	}
	return key.None, false, fmt.Errorf("%w: %s", ErrBadResult, lv.Type())
}

package key

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Kind identifies the payload carried by a Value.
type Kind uint8

const (
	// KindNone is the kind of the zero Value.
	KindNone Kind = iota

	// KindChar carries a single Unicode code point.
	KindChar

	// KindString carries a literal string of more than one code point.
	KindString

	// KindKeyevent carries a platform key code.
	KindKeyevent

	// KindEvent carries an application event.
	KindEvent

	// KindModifier carries a Modifier.
	KindModifier

	// KindEditing carries an editing action.
	KindEditing

	// KindPlaceholder carries a placeholder that produces no output.
	KindPlaceholder

	// KindSlider carries a cursor-moving slider.
	KindSlider

	// KindMacro carries an ordered list of values evaluated in sequence.
	KindMacro

	// KindComposePending carries a node of the compose trie.
	KindComposePending

	// KindHangulInitial carries a Hangul initial consonant.
	KindHangulInitial

	// KindHangulMedial carries a Hangul syllable with a medial vowel.
	KindHangulMedial
)

var kindNames = [...]string{
	KindNone:           "None",
	KindChar:           "Char",
	KindString:         "String",
	KindKeyevent:       "Keyevent",
	KindEvent:          "Event",
	KindModifier:       "Modifier",
	KindEditing:        "Editing",
	KindPlaceholder:    "Placeholder",
	KindSlider:         "Slider",
	KindMacro:          "Macro",
	KindComposePending: "ComposePending",
	KindHangulInitial:  "HangulInitial",
	KindHangulMedial:   "HangulMedial",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Flags are presentation and behaviour bits attached to a Value.
type Flags uint16

const (
	// FlagLatch marks a key that stays active after release until the
	// next non-latchable key.
	FlagLatch Flags = 1 << iota

	// FlagDoubleTapLock makes a second tap on a latched key lock it.
	FlagDoubleTapLock

	// FlagSpecial marks keys that do not repeat and do not clear latched
	// modifiers on their own.
	FlagSpecial

	// FlagGreyed renders the key as unavailable.
	FlagGreyed

	// FlagKeyFont renders the symbol with the icon font.
	FlagKeyFont

	// FlagSmallerFont renders the symbol smaller.
	FlagSmallerFont

	// FlagSecondary renders the key dimmed.
	FlagSecondary

	// FlagPreciseRepeat enables distance-modulated key repeat.
	FlagPreciseRepeat
)

const fontFlags = FlagKeyFont | FlagSmallerFont

// Value is an immutable key value.
//
// The zero Value is None. Values must be compared with Equal, never with ==,
// because macro payloads are held by reference.
type Value struct {
	kind   Kind
	flags  Flags
	code   int32
	symbol string
	macro  *macro
}

type macro struct {
	keys []Value
}

// None is the absence of a key.
var None = Value{}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Flags returns the value's flags.
func (v Value) Flags() Flags { return v.flags }

// HasFlags reports whether all of f are set.
func (v Value) HasFlags(f Flags) bool { return v.flags&f == f }

// IsNone reports whether v is the absence of a key.
func (v Value) IsNone() bool { return v.kind == KindNone }

// Symbol returns the text shown on the key.
func (v Value) Symbol() string { return v.symbol }

// Char returns the code point of a KindChar value, or 0.
func (v Value) Char() rune {
	if v.kind != KindChar {
		return 0
	}
	return rune(v.code)
}

// Text returns the string payload of a KindString value, or the character
// of a KindChar value.
func (v Value) Text() string {
	switch v.kind {
	case KindChar:
		return string(rune(v.code))
	case KindString:
		return v.symbol
	}
	return ""
}

// Keyevent returns the key code of a KindKeyevent value, or 0.
func (v Value) Keyevent() int {
	if v.kind != KindKeyevent {
		return 0
	}
	return int(v.code)
}

// Event returns the event of a KindEvent value.
func (v Value) Event() Event {
	if v.kind != KindEvent {
		return EventNone
	}
	return Event(v.code)
}

// Modifier returns the modifier of a KindModifier value.
func (v Value) Modifier() Modifier {
	if v.kind != KindModifier {
		return ModNone
	}
	return Modifier(v.code)
}

// Editing returns the action of a KindEditing value.
func (v Value) Editing() Editing {
	if v.kind != KindEditing {
		return EditingNone
	}
	return Editing(v.code)
}

// Placeholder returns the placeholder of a KindPlaceholder value.
func (v Value) Placeholder() Placeholder {
	if v.kind != KindPlaceholder {
		return PlaceholderNone
	}
	return Placeholder(v.code)
}

// Slider returns the slider of a KindSlider value.
func (v Value) Slider() Slider {
	if v.kind != KindSlider {
		return SliderNone
	}
	return Slider(v.code)
}

// ComposeState returns the trie node of a KindComposePending value.
func (v Value) ComposeState() int {
	if v.kind != KindComposePending {
		return 0
	}
	return int(v.code)
}

// HangulPrecomposed returns the precomposed syllable carried by a
// KindHangulMedial value.
func (v Value) HangulPrecomposed() rune {
	if v.kind != KindHangulMedial {
		return 0
	}
	return rune(v.code)
}

// HangulInitial returns the initial consonant index of a KindHangulInitial
// value, or -1.
func (v Value) HangulInitial() int {
	if v.kind != KindHangulInitial {
		return -1
	}
	return int(v.code)
}

// Macro returns a copy of the values of a KindMacro value.
func (v Value) Macro() []Value {
	if v.kind != KindMacro || v.macro == nil {
		return nil
	}
	out := make([]Value, len(v.macro.keys))
	copy(out, v.macro.keys)
	return out
}

// Equal reports whether v and o are the same key value.
func (v Value) Equal(o Value) bool {
	return v.Compare(o) == 0
}

// Compare orders values by kind, payload, flags and symbol.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmpInt(int(v.kind), int(o.kind))
	}
	if v.code != o.code {
		return cmpInt(int(v.code), int(o.code))
	}
	if v.flags != o.flags {
		return cmpInt(int(v.flags), int(o.flags))
	}
	if c := strings.Compare(v.symbol, o.symbol); c != 0 {
		return c
	}
	a, b := v.payload(), o.payload()
	if len(a) != len(b) {
		return cmpInt(len(a), len(b))
	}
	for i := range a {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func (v Value) payload() []Value {
	if v.macro == nil {
		return nil
	}
	return v.macro.keys
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// WithFlags returns a copy of v with its flags replaced.
func (v Value) WithFlags(f Flags) Value {
	v.flags = f
	return v
}

// WithChar returns a character value showing c, keeping the flags that are
// not font related.
func (v Value) WithChar(c rune) Value {
	return Value{
		kind:   KindChar,
		flags:  v.flags &^ fontFlags,
		code:   int32(c),
		symbol: string(c),
	}
}

// WithKeyevent returns a keyevent value with code, keeping the symbol and
// flags of v.
func (v Value) WithKeyevent(code int) Value {
	return Value{
		kind:   KindKeyevent,
		flags:  v.flags,
		code:   int32(code),
		symbol: v.symbol,
	}
}

// WithSymbol returns a copy of v showing symbol. String and Hangul values
// cannot carry a separate symbol and are wrapped in a one-element macro.
func (v Value) WithSymbol(symbol string) Value {
	switch v.kind {
	case KindMacro:
		return MakeMacro(symbol, v.macro.keys, v.flags&^fontFlags)
	case KindString, KindHangulInitial, KindHangulMedial, KindNone:
		return MakeMacro(symbol, []Value{v}, v.flags&^fontFlags)
	}
	v.symbol = symbol
	v.flags = symbolFlags(v.flags, symbol)
	return v
}

func symbolFlags(f Flags, symbol string) Flags {
	f &^= fontFlags
	if uniseg.GraphemeClusterCount(symbol) > 1 {
		f |= FlagSmallerFont
	}
	return f
}

// String returns a debugging representation of the value.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindChar:
		if v.symbol == string(rune(v.code)) {
			return fmt.Sprintf("Char(%q)", rune(v.code))
		}
		return fmt.Sprintf("Char(%q %q)", rune(v.code), v.symbol)
	case KindString:
		return fmt.Sprintf("String(%q)", v.Text())
	case KindKeyevent:
		return fmt.Sprintf("Keyevent(%d %q)", v.code, v.symbol)
	case KindEvent:
		return "Event(" + Event(v.code).String() + ")"
	case KindModifier:
		return "Modifier(" + Modifier(v.code).String() + ")"
	case KindEditing:
		return "Editing(" + Editing(v.code).String() + ")"
	case KindPlaceholder:
		return "Placeholder(" + Placeholder(v.code).String() + ")"
	case KindSlider:
		return "Slider(" + Slider(v.code).String() + ")"
	case KindMacro:
		parts := make([]string, 0, len(v.payload()))
		for _, k := range v.payload() {
			parts = append(parts, k.String())
		}
		return fmt.Sprintf("Macro(%q [%s])", v.symbol, strings.Join(parts, " "))
	case KindComposePending:
		return fmt.Sprintf("ComposePending(%d %q)", v.code, v.symbol)
	case KindHangulInitial:
		return fmt.Sprintf("HangulInitial(%d %q)", v.code, v.symbol)
	case KindHangulMedial:
		return fmt.Sprintf("HangulMedial(%q)", rune(v.code))
	}
	return v.kind.String()
}

// MakeChar returns a character value showing c.
func MakeChar(c rune) Value {
	return Value{kind: KindChar, code: int32(c), symbol: string(c)}
}

// MakeCharSymbol returns a character value producing c and showing symbol.
func MakeCharSymbol(c rune, symbol string, flags Flags) Value {
	return Value{kind: KindChar, flags: flags, code: int32(c), symbol: symbol}
}

// MakeString returns a value typing s. A single code point string yields a
// character value.
func MakeString(s string, flags Flags) Value {
	if r, ok := singleRune(s); ok {
		return Value{kind: KindChar, flags: flags, code: int32(r), symbol: s}
	}
	return Value{kind: KindString, flags: flags, symbol: s}
}

// MakeStringSymbol returns a value typing s and showing symbol.
func MakeStringSymbol(s, symbol string, flags Flags) Value {
	return MakeMacro(symbol, []Value{MakeString(s, 0)}, flags)
}

func singleRune(s string) (rune, bool) {
	var r rune
	n := 0
	for _, c := range s {
		r = c
		n++
		if n > 1 {
			return 0, false
		}
	}
	return r, n == 1
}

// MakeKeyevent returns a value sending the platform key code.
func MakeKeyevent(symbol string, code int, flags Flags) Value {
	return Value{kind: KindKeyevent, flags: flags, code: int32(code), symbol: symbol}
}

// MakeEvent returns a value raising ev.
func MakeEvent(symbol string, ev Event, flags Flags) Value {
	return Value{kind: KindEvent, flags: flags, code: int32(ev), symbol: symbol}
}

// MakeModifier returns a latchable modifier value.
func MakeModifier(symbol string, m Modifier, flags Flags) Value {
	if uniseg.GraphemeClusterCount(symbol) > 1 {
		flags |= FlagSmallerFont
	}
	return Value{kind: KindModifier, flags: flags, code: int32(m), symbol: symbol}
}

// MakeEditing returns a value performing the editing action.
func MakeEditing(symbol string, e Editing, flags Flags) Value {
	return Value{kind: KindEditing, flags: flags, code: int32(e), symbol: symbol}
}

// MakePlaceholder returns a value that produces nothing.
func MakePlaceholder(symbol string, p Placeholder, flags Flags) Value {
	return Value{kind: KindPlaceholder, flags: flags, code: int32(p), symbol: symbol}
}

// MakeSlider returns a cursor slider value.
func MakeSlider(symbol string, s Slider, flags Flags) Value {
	return Value{kind: KindSlider, flags: flags, code: int32(s), symbol: symbol}
}

// MakeMacro returns a value evaluating keys in order. It panics when keys is
// empty.
func MakeMacro(symbol string, keys []Value, flags Flags) Value {
	if len(keys) == 0 {
		panic("key: empty macro")
	}
	m := &macro{keys: make([]Value, len(keys))}
	copy(m.keys, keys)
	return Value{kind: KindMacro, flags: symbolFlags(flags, symbol), symbol: symbol, macro: m}
}

// MakeComposePending returns a latched value holding the compose trie node
// state.
func MakeComposePending(symbol string, state int, flags Flags) Value {
	return Value{kind: KindComposePending, flags: flags | FlagLatch, code: int32(state), symbol: symbol}
}

// MakeHangulInitial returns a latched value holding a Hangul initial
// consonant index.
func MakeHangulInitial(symbol string, initial int) Value {
	return Value{kind: KindHangulInitial, flags: FlagLatch, code: int32(initial), symbol: symbol}
}

// MakeHangulMedial returns a latched value holding a precomposed Hangul
// syllable without final consonant.
func MakeHangulMedial(precomposed rune) Value {
	return Value{kind: KindHangulMedial, flags: FlagLatch, code: int32(precomposed), symbol: string(precomposed)}
}

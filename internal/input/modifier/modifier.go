package modifier

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/swipekey/internal/input/compose"
	"github.com/dshills/swipekey/internal/input/key"
)

// Engine applies modifiers to key values. An Engine is immutable and safe
// for concurrent use.
type Engine struct {
	table  *compose.Table
	modmap *Modmap
	shift  int
	fn     int
	tables map[key.Modifier]int
	script string
	numpad int
}

// Option configures an Engine.
type Option func(*Engine)

// WithModmap sets the user remapping table.
func WithModmap(m *Modmap) Option {
	return func(e *Engine) {
		e.modmap = m
	}
}

// WithTable sets the compose tables. The default is compose.Default().
func WithTable(t *compose.Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithNumpadScript selects the digits used by ApplyNumpadScript, for
// example "persian" or "devanagari". Unknown scripts leave digits as they
// are.
func WithNumpadScript(script string) Option {
	return func(e *Engine) {
		e.script = script
	}
}

// accentTables maps compose-table backed modifiers to their table name.
var accentTables = map[key.Modifier]string{
	key.ModGrave:       "accent_grave",
	key.ModAigu:        "accent_aigu",
	key.ModCirconflexe: "accent_circonflexe",
	key.ModTilde:       "accent_tilde",
	key.ModCedille:     "accent_cedille",
	key.ModTrema:       "accent_trema",
	key.ModCaron:       "accent_caron",
	key.ModRing:        "accent_ring",
	key.ModMacron:      "accent_macron",
	key.ModOgonek:      "accent_ogonek",
	key.ModDotAbove:    "accent_dot_above",
	key.ModBreve:       "accent_breve",
	key.ModDoubleAigu:  "accent_double_aigu",
	key.ModDoubleGrave: "accent_double_grave",
	key.ModDotBelow:    "accent_dot_below",
	key.ModHorn:        "accent_horn",
	key.ModHookAbove:   "accent_hook_above",
	key.ModSlash:       "accent_slash",
	key.ModBar:         "accent_bar",
	key.ModOrdinal:     "ordinal",
	key.ModSuperscript: "superscript",
	key.ModSubscript:   "subscript",
	key.ModArrows:      "arrows",
	key.ModBox:         "box",
}

// deadMarks are the combining marks used when an accent's table has no
// entry for a character.
var deadMarks = map[key.Modifier]rune{
	key.ModGrave:       '\u0300',
	key.ModAigu:        '\u0301',
	key.ModCirconflexe: '\u0302',
	key.ModTilde:       '\u0303',
	key.ModCedille:     '\u0327',
	key.ModTrema:       '\u0308',
	key.ModCaron:       '\u030c',
	key.ModRing:        '\u030a',
	key.ModMacron:      '\u0304',
	key.ModOgonek:      '\u0328',
	key.ModDotAbove:    '\u0307',
	key.ModBreve:       '\u0306',
	key.ModDoubleAigu:  '\u030b',
	key.ModDoubleGrave: '\u030f',
	key.ModDotBelow:    '\u0323',
	key.ModHorn:        '\u031b',
	key.ModHookAbove:   '\u0309',
}

const combiningArrowRight = "\u20d7"

// New returns an Engine. It panics if the compose tables lack a table the
// engine depends on.
func New(opts ...Option) *Engine {
	e := &Engine{table: compose.Default(), numpad: -1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.shift = e.mustRoot(compose.ShiftTable)
	e.fn = e.mustRoot(compose.FnTable)
	if e.script != "" {
		if s, ok := e.table.Root("numpad_" + e.script); ok {
			e.numpad = s
		}
	}
	e.tables = make(map[key.Modifier]int, len(accentTables))
	for m, name := range accentTables {
		e.tables[m] = e.mustRoot(name)
	}
	return e
}

func (e *Engine) mustRoot(name string) int {
	s, ok := e.table.Root(name)
	if !ok {
		panic("modifier: missing compose table " + name)
	}
	return s
}

// Modmap returns the user remapping table, which may be nil.
func (e *Engine) Modmap() *Modmap {
	return e.modmap
}

// Modify applies mods to v in canonical order. It returns key.None when v
// is None or when the result has an empty symbol.
func (e *Engine) Modify(v key.Value, mods key.Modifiers) key.Value {
	if v.IsNone() {
		return key.None
	}
	r := v
	for i := 0; i < mods.Len(); i++ {
		r = e.modifyOne(r, mods.At(i))
	}
	if r.Symbol() == "" {
		return key.None
	}
	return r
}

func (e *Engine) modifyOne(v, mod key.Value) key.Value {
	switch mod.Kind() {
	case key.KindModifier:
		return e.apply(v, mod.Modifier())
	case key.KindComposePending:
		if v.Kind() == key.KindComposePending {
			return key.ByName("compose_cancel")
		}
		return e.table.Apply(mod.ComposeState(), v)
	case key.KindHangulInitial:
		return combineHangulInitial(v, mod.HangulInitial())
	case key.KindHangulMedial:
		return combineHangulMedial(v, mod.HangulPrecomposed())
	}
	return v
}

func (e *Engine) apply(v key.Value, m key.Modifier) key.Value {
	switch m {
	case key.ModShift:
		return e.applyShift(v)
	case key.ModFn:
		return e.applyFn(v)
	case key.ModCtrl:
		if mapped, ok := e.modmap.Get(LayerCtrl, v); ok {
			v = mapped
		}
		return turnIntoKeyevent(v)
	case key.ModAlt, key.ModMeta:
		return turnIntoKeyevent(v)
	case key.ModGesture:
		return e.applyGesture(v)
	case key.ModSelectionMode:
		return applySelectionMode(v)
	case key.ModArrowRight:
		return applyCombining(v, combiningArrowRight)
	}
	if state, ok := e.tables[m]; ok {
		if r, ok := e.applyCompose(v, state); ok {
			return r
		}
		if mark, ok := deadMarks[m]; ok {
			return applyDeadChar(v, mark)
		}
		return v
	}
	panic(fmt.Sprintf("modifier: unhandled modifier %v", m))
}

// applyCompose feeds a character to the table rooted at state. It never
// greys out keys.
func (e *Engine) applyCompose(v key.Value, state int) (key.Value, bool) {
	if v.Kind() != key.KindChar {
		return v, false
	}
	return e.table.ApplyChar(state, v.Char())
}

func applyDeadChar(v key.Value, mark rune) key.Value {
	if v.Kind() != key.KindChar {
		return v
	}
	c := v.Char()
	s := norm.NFC.String(string(c) + string(mark))
	r := []rune(s)
	if len(r) != 1 || r[0] == c {
		return v
	}
	return key.MakeChar(r[0])
}

func applyCombining(v key.Value, mark string) key.Value {
	if v.Kind() != key.KindChar {
		return v
	}
	return key.MakeString(string(v.Char())+mark, v.Flags())
}

func (e *Engine) applyShift(v key.Value) key.Value {
	if mapped, ok := e.modmap.Get(LayerShift, v); ok {
		return mapped
	}
	if r, ok := e.applyCompose(v, e.shift); ok {
		return r
	}
	switch v.Kind() {
	case key.KindChar:
		c := v.Char()
		up := unicode.ToUpper(c)
		if up == c {
			return v
		}
		return v.WithChar(up)
	case key.KindString:
		return key.MakeString(capitalize(v.Text()), v.Flags())
	}
	return v
}

// capitalize upper-cases the first grapheme cluster of s.
func capitalize(s string) string {
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return strings.ToUpper(first) + rest
}

func (e *Engine) applyFn(v key.Value) key.Value {
	if mapped, ok := e.modmap.Get(LayerFn, v); ok {
		return mapped
	}
	name := ""
	switch v.Kind() {
	case key.KindChar:
		if r, ok := e.applyCompose(v, e.fn); ok {
			return r
		}
	case key.KindKeyevent:
		name = fnKeyevent(v.Keyevent())
	case key.KindEvent:
		if v.Event() == key.EventSwitchNumeric {
			name = "switch_greekmath"
		}
	case key.KindPlaceholder:
		switch v.Placeholder() {
		case key.PlaceholderF11:
			name = "f11"
		case key.PlaceholderF12:
			name = "f12"
		}
	case key.KindEditing:
		switch v.Editing() {
		case key.EditingUndo:
			name = "redo"
		case key.EditingPaste:
			name = "pasteAsPlainText"
		}
	}
	if name == "" {
		return v
	}
	return key.ByName(name)
}

func fnKeyevent(code int) string {
	switch code {
	case key.KeycodeDpadUp:
		return "page_up"
	case key.KeycodeDpadDown:
		return "page_down"
	case key.KeycodeDpadLeft:
		return "home"
	case key.KeycodeDpadRight:
		return "end"
	case key.KeycodeEscape:
		return "insert"
	case key.KeycodeTab:
		return "\\t"
	case key.KeycodePageUp, key.KeycodePageDown, key.KeycodeMoveHome, key.KeycodeMoveEnd:
		return "removed"
	}
	return ""
}

func (e *Engine) applyGesture(v key.Value) key.Value {
	if mapped, ok := e.modmap.Get(LayerGesture, v); ok {
		return mapped
	}
	if r := e.applyShift(v); !r.Equal(v) {
		return r
	}
	if r := e.applyFn(v); !r.Equal(v) {
		return r
	}
	name := ""
	switch v.Kind() {
	case key.KindModifier:
		if v.Modifier() == key.ModShift {
			name = "capslock"
		}
	case key.KindKeyevent:
		switch v.Keyevent() {
		case key.KeycodeDel:
			name = "delete_word"
		case key.KeycodeForwardDel:
			name = "forward_delete_word"
		}
	}
	if name == "" {
		return v
	}
	return key.ByName(name)
}

func applySelectionMode(v key.Value) key.Value {
	name := ""
	switch v.Kind() {
	case key.KindChar:
		if v.Char() == ' ' {
			name = "selection_cancel"
		}
	case key.KindSlider:
		switch v.Slider() {
		case key.SliderCursorLeft:
			name = "selection_cursor_left"
		case key.SliderCursorRight:
			name = "selection_cursor_right"
		}
	case key.KindKeyevent:
		if v.Keyevent() == key.KeycodeEscape {
			name = "selection_cancel"
		}
	}
	if name == "" {
		return v
	}
	return key.ByName(name)
}

// turnIntoKeyevent turns a character into the keyevent typing it, keeping
// the symbol. Characters without a key code are returned unchanged.
func turnIntoKeyevent(v key.Value) key.Value {
	if v.Kind() != key.KindChar {
		return v
	}
	code, ok := key.KeycodeForChar(v.Char())
	if !ok {
		return v
	}
	return v.WithKeyevent(code)
}

// ModifyLongPress returns the value a key produces when held instead of
// repeated.
func (e *Engine) ModifyLongPress(v key.Value) key.Value {
	if v.Kind() != key.KindEvent {
		return v
	}
	switch v.Event() {
	case key.EventChangeMethodAuto:
		return key.ByName("change_method")
	case key.EventVoiceTyping:
		return key.ByName("voice_typing_chooser")
	}
	return v
}

// ApplyNumpadScript replaces the digit of a character value with the digit
// of the configured numpad script.
func (e *Engine) ApplyNumpadScript(v key.Value) key.Value {
	if e.numpad < 0 {
		return v
	}
	if r, ok := e.applyCompose(v, e.numpad); ok {
		return r
	}
	return v
}

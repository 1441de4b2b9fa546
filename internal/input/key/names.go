package key

import (
	"strconv"
	"sync"

	"github.com/rivo/uniseg"
)

// hangulInitials are the initial consonants in syllable composition order.
const hangulInitials = "ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ"

func sized(f Flags, symbol string) Flags {
	if uniseg.GraphemeClusterCount(symbol) > 1 {
		f |= FlagSmallerFont
	}
	return f
}

func modifierKey(symbol string, m Modifier) Value {
	return MakeModifier(symbol, m, FlagLatch|FlagSpecial)
}

func accentKey(symbol string, m Modifier) Value {
	return MakeModifier(symbol, m, FlagLatch|FlagSpecial|FlagSecondary)
}

func eventKey(symbol string, e Event) Value {
	return MakeEvent(symbol, e, sized(FlagSpecial, symbol))
}

func keyeventKey(symbol string, code int) Value {
	return MakeKeyevent(symbol, code, sized(0, symbol))
}

func editingKey(symbol string, e Editing) Value {
	return MakeEditing(symbol, e, sized(0, symbol))
}

func placeholderKey(symbol string, p Placeholder) Value {
	return MakePlaceholder(symbol, p, sized(0, symbol))
}

func sliderKey(symbol string, s Slider) Value {
	return MakeSlider(symbol, s, FlagPreciseRepeat)
}

func stringKey(symbol, text string) Value {
	return MakeString(text, 0).WithSymbol(symbol)
}

var (
	specialOnce  sync.Once
	specialKeys  map[string]Value
	specialNames map[identity]string
)

type identity struct {
	kind Kind
	code int32
}

func loadSpecialKeys() {
	m := map[string]Value{
		"shift":          MakeModifier("⇧", ModShift, FlagLatch|FlagSpecial),
		"ctrl":           modifierKey("Ctrl", ModCtrl),
		"alt":            modifierKey("Alt", ModAlt),
		"meta":           modifierKey("Meta", ModMeta),
		"fn":             modifierKey("Fn", ModFn),
		"selection_mode": modifierKey("Sel", ModSelectionMode),

		"accent_grave":        accentKey("ˋ", ModGrave),
		"accent_aigu":         accentKey("´", ModAigu),
		"accent_circonflexe":  accentKey("ˆ", ModCirconflexe),
		"accent_tilde":        accentKey("˜", ModTilde),
		"accent_cedille":      accentKey("¸", ModCedille),
		"accent_trema":        accentKey("¨", ModTrema),
		"accent_caron":        accentKey("ˇ", ModCaron),
		"accent_ring":         accentKey("˚", ModRing),
		"accent_macron":       accentKey("¯", ModMacron),
		"accent_ogonek":       accentKey("˛", ModOgonek),
		"accent_dot_above":    accentKey("˙", ModDotAbove),
		"accent_breve":        accentKey("˘", ModBreve),
		"accent_double_aigu":  accentKey("˝", ModDoubleAigu),
		"accent_double_grave": accentKey("◌̏", ModDoubleGrave),
		"accent_dot_below":    accentKey("◌̣", ModDotBelow),
		"accent_horn":         accentKey("◌̛", ModHorn),
		"accent_hook_above":   accentKey("◌̉", ModHookAbove),
		"accent_slash":        accentKey("/", ModSlash),
		"accent_bar":          accentKey("—", ModBar),
		"accent_arrow_right":  accentKey("→", ModArrowRight),
		"ordinal":             accentKey("ª", ModOrdinal),
		"superscript":         accentKey("Sup", ModSuperscript),
		"subscript":           accentKey("Sub", ModSubscript),
		"arrows":              accentKey("↗", ModArrows),
		"box":                 accentKey("┼", ModBox),

		"compose":        MakeComposePending("◈", 0, FlagSpecial),
		"compose_cancel": placeholderKey("✕", PlaceholderComposeCancel),

		"config":               eventKey("⚙", EventConfig),
		"switch_text":          eventKey("ABC", EventSwitchText),
		"switch_numeric":       eventKey("123+", EventSwitchNumeric),
		"switch_emoji":         eventKey("☺", EventSwitchEmoji),
		"switch_back_emoji":    eventKey("ABC", EventSwitchBackEmoji),
		"switch_forward":       eventKey("⇨", EventSwitchForward),
		"switch_backward":      eventKey("⇦", EventSwitchBackward),
		"switch_greekmath":     eventKey("πλ∇¬", EventSwitchGreekmath),
		"switch_clipboard":     eventKey("📋", EventSwitchClipboard),
		"change_method":        eventKey("⌨", EventChangeMethod),
		"change_method_prev":   eventKey("⌨", EventChangeMethodPrev),
		"change_method_picker": eventKey("⌨", EventChangeMethodPicker),
		"change_method_auto":   eventKey("⌨", EventChangeMethodAuto),
		"action":               eventKey("Action", EventAction),
		"capslock":             eventKey("⇪", EventCapsLock),
		"voice_typing":         eventKey("🎤", EventVoiceTyping),
		"voice_typing_chooser": eventKey("🎤", EventVoiceTypingChooser),

		"esc":         keyeventKey("Esc", KeycodeEscape),
		"enter":       keyeventKey("⏎", KeycodeEnter),
		"up":          keyeventKey("↑", KeycodeDpadUp),
		"right":       keyeventKey("→", KeycodeDpadRight),
		"down":        keyeventKey("↓", KeycodeDpadDown),
		"left":        keyeventKey("←", KeycodeDpadLeft),
		"page_up":     keyeventKey("⇞", KeycodePageUp),
		"page_down":   keyeventKey("⇟", KeycodePageDown),
		"home":        keyeventKey("⇱", KeycodeMoveHome),
		"end":         keyeventKey("⇲", KeycodeMoveEnd),
		"backspace":   keyeventKey("⌫", KeycodeDel),
		"delete":      keyeventKey("⌦", KeycodeForwardDel),
		"insert":      keyeventKey("Ins", KeycodeInsert),
		"tab":         keyeventKey("⇥", KeycodeTab),
		"menu":        keyeventKey("Menu", KeycodeMenu),
		"scroll_lock": keyeventKey("Scrl", KeycodeScrollLock),

		"copy":                editingKey("Copy", EditingCopy),
		"paste":               editingKey("Paste", EditingPaste),
		"cut":                 editingKey("Cut", EditingCut),
		"selectAll":           editingKey("All", EditingSelectAll),
		"pasteAsPlainText":    editingKey("Paste", EditingPastePlain),
		"undo":                editingKey("↶", EditingUndo),
		"redo":                editingKey("↷", EditingRedo),
		"delete_word":         editingKey("⌫w", EditingDeleteWord),
		"forward_delete_word": editingKey("w⌦", EditingForwardDeleteWord),
		"selection_cancel":    editingKey("Esc", EditingSelectionCancel),

		"removed":         placeholderKey("", PlaceholderRemoved),
		"f11_placeholder": placeholderKey("F11", PlaceholderF11),
		"f12_placeholder": placeholderKey("F12", PlaceholderF12),
		"shindot":         placeholderKey("◌ׁ", PlaceholderShindot),
		"sindot":          placeholderKey("◌ׂ", PlaceholderSindot),
		"ole":             placeholderKey("◌ǫ", PlaceholderOle),
		"meteg":           placeholderKey("◌ֽ", PlaceholderMeteg),

		"cursor_left":            sliderKey("◀", SliderCursorLeft),
		"cursor_right":           sliderKey("▶", SliderCursorRight),
		"cursor_up":              sliderKey("▲", SliderCursorUp),
		"cursor_down":            sliderKey("▼", SliderCursorDown),
		"selection_cursor_left":  sliderKey("◀", SliderSelectionLeft),
		"selection_cursor_right": sliderKey("▶", SliderSelectionRight),

		"space":    MakeCharSymbol(' ', "␣", FlagSecondary),
		"nbsp":     MakeCharSymbol('\u00a0', "⍽", FlagSmallerFont),
		"nnbsp":    MakeCharSymbol('\u202f', "⍽", FlagSmallerFont),
		"zwj":      MakeCharSymbol('\u200d', "zwj", FlagSmallerFont),
		"zwnj":     MakeCharSymbol('\u200c', "zwnj", FlagSmallerFont),
		"\\t":      MakeCharSymbol('\t', "\\t", 0),
		"\\n":      MakeCharSymbol('\n', "\\n", 0),
		"\\\\":     MakeCharSymbol('\\', "\\", 0),
		"ellipsis": stringKey("…", "..."),
	}
	for i := 1; i <= 12; i++ {
		n := "f" + strconv.Itoa(i)
		m[n] = keyeventKey("F"+strconv.Itoa(i), KeycodeF1+i-1)
	}
	i := 0
	for _, r := range hangulInitials {
		m[string(r)] = MakeHangulInitial(string(r), i)
		i++
	}

	names := make(map[identity]string, len(m))
	for n, v := range m {
		switch v.kind {
		case KindChar, KindString, KindMacro, KindHangulInitial:
			continue
		}
		id := identity{v.kind, v.code}
		if prev, ok := names[id]; !ok || n < prev {
			names[id] = n
		}
	}
	specialKeys = m
	specialNames = names
}

// Special returns the named key, if name is a known key name.
func Special(name string) (Value, bool) {
	specialOnce.Do(loadSpecialKeys)
	v, ok := specialKeys[name]
	return v, ok
}

// NameOf returns the name of the special key with the same kind and payload
// as v. Characters and strings have no name.
func NameOf(v Value) (string, bool) {
	specialOnce.Do(loadSpecialKeys)
	n, ok := specialNames[identity{v.kind, v.code}]
	return n, ok
}

// ByName returns the key defined by name. Known names yield the special key,
// key definitions are parsed and anything else types name literally.
func ByName(name string) Value {
	v, err := Parse(name)
	if err != nil {
		return MakeString(name, 0)
	}
	return v
}

// byNameOrString returns the special key called name or a key typing name.
func byNameOrString(name string) Value {
	if v, ok := Special(name); ok {
		return v
	}
	return MakeString(name, 0)
}

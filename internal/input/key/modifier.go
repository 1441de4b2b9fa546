package key

import (
	"slices"
	"strconv"
	"strings"
)

// Modifier identifies a latchable modifier or dead-key accent.
type Modifier uint8

const (
	// ModNone indicates no modifier.
	ModNone Modifier = iota

	// ModShift indicates the Shift key.
	ModShift

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModMeta indicates the Meta key.
	ModMeta

	// ModFn selects the alternative function layer.
	ModFn

	// ModGesture is active while a circle gesture is being resolved.
	ModGesture

	// ModSelectionMode is active while text is selected.
	ModSelectionMode

	// Accents.
	ModGrave
	ModAigu
	ModCirconflexe
	ModTilde
	ModCedille
	ModTrema
	ModCaron
	ModRing
	ModMacron
	ModOgonek
	ModDotAbove
	ModBreve
	ModDoubleAigu
	ModDoubleGrave
	ModDotBelow
	ModHorn
	ModHookAbove
	ModSlash
	ModBar
	ModArrowRight

	// Layer modifiers backed by compose tables.
	ModOrdinal
	ModSuperscript
	ModSubscript
	ModArrows
	ModBox

	modCount
)

var modifierNames = [...]string{
	ModNone:          "none",
	ModShift:         "shift",
	ModCtrl:          "ctrl",
	ModAlt:           "alt",
	ModMeta:          "meta",
	ModFn:            "fn",
	ModGesture:       "gesture",
	ModSelectionMode: "selection_mode",
	ModGrave:         "grave",
	ModAigu:          "aigu",
	ModCirconflexe:   "circonflexe",
	ModTilde:         "tilde",
	ModCedille:       "cedille",
	ModTrema:         "trema",
	ModCaron:         "caron",
	ModRing:          "ring",
	ModMacron:        "macron",
	ModOgonek:        "ogonek",
	ModDotAbove:      "dot_above",
	ModBreve:         "breve",
	ModDoubleAigu:    "double_aigu",
	ModDoubleGrave:   "double_grave",
	ModDotBelow:      "dot_below",
	ModHorn:          "horn",
	ModHookAbove:     "hook_above",
	ModSlash:         "slash",
	ModBar:           "bar",
	ModArrowRight:    "arrow_right",
	ModOrdinal:       "ordinal",
	ModSuperscript:   "superscript",
	ModSubscript:     "subscript",
	ModArrows:        "arrows",
	ModBox:           "box",
}

// String returns the modifier name.
func (m Modifier) String() string {
	if int(m) < len(modifierNames) {
		return modifierNames[m]
	}
	return "Modifier(" + strconv.Itoa(int(m)) + ")"
}

// ParseModifier returns the modifier with the given name.
func ParseModifier(name string) (Modifier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := ModShift; m < modCount; m++ {
		if modifierNames[m] == name {
			return m, true
		}
	}
	return ModNone, false
}

// IsAccent reports whether m is a dead-key accent or compose-table layer.
func (m Modifier) IsAccent() bool {
	return m >= ModGrave && m < modCount
}

// evaluationOrder is the order in which active modifiers are applied to a
// key. Gesture and selection mode rewrite the key before any layer is
// consulted; ctrl, alt and meta turn the final character into a keyevent.
var evaluationOrder = [...]Modifier{
	ModGesture,
	ModSelectionMode,
	ModShift,
	ModFn,
	ModGrave,
	ModAigu,
	ModCirconflexe,
	ModTilde,
	ModCedille,
	ModTrema,
	ModCaron,
	ModRing,
	ModMacron,
	ModOgonek,
	ModDotAbove,
	ModBreve,
	ModDoubleAigu,
	ModDoubleGrave,
	ModDotBelow,
	ModHorn,
	ModHookAbove,
	ModSlash,
	ModBar,
	ModArrowRight,
	ModOrdinal,
	ModSuperscript,
	ModSubscript,
	ModArrows,
	ModBox,
	ModMeta,
	ModAlt,
	ModCtrl,
}

var modifierRank [modCount]int

func init() {
	seen := make([]bool, modCount)
	for i, m := range evaluationOrder {
		if m == ModNone || m >= modCount || seen[m] {
			panic("key: invalid modifier evaluation order at " + m.String())
		}
		seen[m] = true
		modifierRank[m] = i
	}
	for m := ModShift; m < modCount; m++ {
		if !seen[m] {
			panic("key: modifier missing from evaluation order: " + m.String())
		}
	}
}

// EvaluationOrder returns the modifiers in the order they are applied.
func EvaluationOrder() []Modifier {
	return slices.Clone(evaluationOrder[:])
}

// Rank returns the position of m in the evaluation order, or -1 for
// ModNone and unknown modifiers.
func (m Modifier) Rank() int {
	if m == ModNone || m >= modCount {
		return -1
	}
	return modifierRank[m]
}

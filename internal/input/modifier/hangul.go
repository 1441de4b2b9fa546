package modifier

import (
	"slices"

	"github.com/dshills/swipekey/internal/input/key"
)

const (
	hangulBase = 0xAC00
	// Syllables per initial consonant: 21 medials times 28 finals.
	hangulInitialStride = 588
	hangulMedialStride  = 28
)

// hangulMedials are the vowels in syllable composition order.
var hangulMedials = []rune("ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ")

// hangulFinals are the final consonants in syllable composition order.
// Index 0 is the absence of a final consonant.
var hangulFinals = []rune(" ㄱㄲㄳㄴㄵㄶㄷㄹㄺㄻㄼㄽㄾㄿㅀㅁㅂㅄㅅㅆㅇㅈㅊㅋㅌㅍㅎ")

// jamo returns the compatibility jamo typed by v. Consonant keys are
// Hangul initial values and carry the jamo as their symbol.
func jamo(v key.Value) (rune, bool) {
	switch v.Kind() {
	case key.KindChar:
		return v.Char(), true
	case key.KindHangulInitial:
		for _, r := range v.Symbol() {
			return r, true
		}
	}
	return 0, false
}

// combineHangulInitial combines a vowel typed after an initial consonant
// into a syllable without final consonant. Keys that are not vowels are
// greyed out.
func combineHangulInitial(v key.Value, initial int) key.Value {
	c, ok := jamo(v)
	if !ok {
		return v
	}
	medial := slices.Index(hangulMedials, c)
	if medial < 0 || initial < 0 {
		return v.WithFlags(v.Flags() | key.FlagGreyed)
	}
	return key.MakeHangulMedial(rune(hangulBase + initial*hangulInitialStride + medial*hangulMedialStride))
}

// combineHangulMedial adds a final consonant to a precomposed syllable.
// Keys that are not final consonants are greyed out.
func combineHangulMedial(v key.Value, precomposed rune) key.Value {
	c, ok := jamo(v)
	if !ok {
		return v
	}
	final := slices.Index(hangulFinals, c)
	if final <= 0 {
		return v.WithFlags(v.Flags() | key.FlagGreyed)
	}
	return key.MakeChar(precomposed + rune(final))
}

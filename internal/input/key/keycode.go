package key

// Platform key codes sent by keyevent values. The numbering follows the
// Android KeyEvent constants so hosts can forward them unchanged.
const (
	Keycode0            = 7
	Keycode9            = 16
	KeycodeStar         = 17
	KeycodePound        = 18
	KeycodeDpadUp       = 19
	KeycodeDpadDown     = 20
	KeycodeDpadLeft     = 21
	KeycodeDpadRight    = 22
	KeycodeA            = 29
	KeycodeZ            = 54
	KeycodeComma        = 55
	KeycodePeriod       = 56
	KeycodeTab          = 61
	KeycodeSpace        = 62
	KeycodeEnter        = 66
	KeycodeDel          = 67
	KeycodeGrave        = 68
	KeycodeMinus        = 69
	KeycodeEquals       = 70
	KeycodeLeftBracket  = 71
	KeycodeRightBracket = 72
	KeycodeBackslash    = 73
	KeycodeSemicolon    = 74
	KeycodeApostrophe   = 75
	KeycodeSlash        = 76
	KeycodeAt           = 77
	KeycodePlus         = 81
	KeycodeMenu         = 82
	KeycodePageUp       = 92
	KeycodePageDown     = 93
	KeycodeEscape       = 111
	KeycodeForwardDel   = 112
	KeycodeScrollLock   = 116
	KeycodeMoveHome     = 122
	KeycodeMoveEnd      = 123
	KeycodeInsert       = 124
	KeycodeF1           = 131
	KeycodeF12          = 142
	KeycodeNumpadLParen = 162
	KeycodeNumpadRParen = 163
)

// Meta state bits sent alongside keyevents.
const (
	MetaShiftOn = 0x1
	MetaAltOn   = 0x2
	MetaCtrlOn  = 0x1000
	MetaMetaOn  = 0x10000
)

// KeycodeForChar returns the key code that types c on a US keyboard, used
// to turn characters into keyevents under ctrl, alt and meta.
func KeycodeForChar(c rune) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return KeycodeA + int(c-'a'), true
	case c >= 'A' && c <= 'Z':
		return KeycodeA + int(c-'A'), true
	case c >= '0' && c <= '9':
		return Keycode0 + int(c-'0'), true
	}
	switch c {
	case '`':
		return KeycodeGrave, true
	case '-':
		return KeycodeMinus, true
	case '=':
		return KeycodeEquals, true
	case '[':
		return KeycodeLeftBracket, true
	case ']':
		return KeycodeRightBracket, true
	case '\\':
		return KeycodeBackslash, true
	case ';':
		return KeycodeSemicolon, true
	case '\'':
		return KeycodeApostrophe, true
	case '/':
		return KeycodeSlash, true
	case '@':
		return KeycodeAt, true
	case '+':
		return KeycodePlus, true
	case ',':
		return KeycodeComma, true
	case '.':
		return KeycodePeriod, true
	case '*':
		return KeycodeStar, true
	case '#':
		return KeycodePound, true
	case '(':
		return KeycodeNumpadLParen, true
	case ')':
		return KeycodeNumpadRParen, true
	case ' ':
		return KeycodeSpace, true
	}
	return 0, false
}

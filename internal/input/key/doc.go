// Package key provides the key value model for the input system.
//
// This package defines the fundamental types for representing what a key
// on the soft keyboard produces:
//
//   - Value: an immutable tagged key value (character, string, keyevent,
//     event, modifier, editing action, slider, macro, compose-pending or
//     Hangul jamo)
//   - Modifier: the latchable modifiers and dead-key accents
//   - Modifiers: a canonically ordered set of active modifier values
//
// # Key Definitions
//
// Key definitions found in layouts and configuration are parsed by Parse:
//
//   - Named keys: "shift", "enter", "cursor_left", "accent_aigu"
//   - Plain strings: "a", "foo" (anything that is not a known name)
//   - Symbol with actions: "Ω:'omega'", "⇥:tab", "C:ctrl,'c'"
//   - Attributed form: ":str flags='dim' symbol='Sym':'text'"
//
// Values must be compared with Equal or Compare. The zero Value is None,
// meaning "no key".
package key

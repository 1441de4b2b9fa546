// Package modifier applies active modifiers to key values.
//
// An Engine transforms the value under a finger according to the set of
// latched, locked and held modifiers: shift casing, the fn layer, dead-key
// accents, ctrl/alt/meta key chords, gesture and selection-mode remapping,
// pending compose sequences and Hangul syllable composition.
//
// Modifiers are applied one at a time in the canonical order of
// key.Modifiers, each step transforming the previous step's result. A
// result with an empty symbol is a removed key and yields key.None.
//
// A Modmap holds user-defined remappings consulted before the built-in
// shift, fn, ctrl and gesture rules. It is passed to the Engine explicitly
// and replaced as a whole when settings change.
package modifier

// Package keyboard composes the input-resolution engine into a keyboard.
//
// A Keyboard owns a placed layout, the Pointers coordinator, the modifier
// engine with the user modmap and an optional key script. Touches are fed
// through HandleTouch, or through Run which also drives key repeat:
//
//	kb, err := keyboard.New(cfg, sink)
//	if err != nil {
//		return err
//	}
//	defer kb.Close()
//	err = kb.Run(ctx, touches)
//
// Resolved keys are delivered to a Sink. Characters and strings are
// committed as text, keyevents carry the meta state of the active ctrl,
// alt, shift and meta modifiers, and macros are evaluated one key at a
// time, latchable keys of a macro modifying the keys that follow them.
//
// Sliders move the cursor when the finger reaches them and on each repeat,
// never on release.
//
// Every method of Keyboard is safe for concurrent use. Sink methods are
// called with the keyboard locked and must not call back into it.
package keyboard

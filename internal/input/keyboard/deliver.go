package keyboard

import (
	"github.com/dshills/swipekey/internal/input/key"
)

// metaState returns the meta bits of the system modifiers in mods.
func metaState(mods key.Modifiers) int {
	meta := 0
	for i := 0; i < mods.Len(); i++ {
		switch mods.At(i).Modifier() {
		case key.ModShift:
			meta |= key.MetaShiftOn
		case key.ModCtrl:
			meta |= key.MetaCtrlOn
		case key.ModAlt:
			meta |= key.MetaAltOn
		case key.ModMeta:
			meta |= key.MetaMetaOn
		}
	}
	return meta
}

// deliver sends a typed key to the sink.
func (k *Keyboard) deliver(v key.Value, mods key.Modifiers) {
	k.metrics.keysDelivered.Add(1)
	k.logger.Debug("key delivered", "key", v, "mods", mods)

	switch v.Kind() {
	case key.KindChar, key.KindString:
		k.sink.CommitText(v.Text())
	case key.KindKeyevent:
		k.sink.SendKey(v.Keyevent(), metaState(mods))
	case key.KindEvent:
		k.handleEvent(v.Event())
	case key.KindEditing:
		k.handleEditing(v.Editing())
	case key.KindMacro:
		k.evaluateMacro(v.Macro())
	}
}

func (k *Keyboard) handleEvent(ev key.Event) {
	if ev == key.EventCapsLock {
		k.setFake("shift", true, true)
		return
	}
	k.sink.HandleEvent(ev)
}

func (k *Keyboard) handleEditing(e key.Editing) {
	switch e {
	case key.EditingDeleteWord:
		k.sink.SendKey(key.KeycodeDel, key.MetaCtrlOn)
	case key.EditingForwardDeleteWord:
		k.sink.SendKey(key.KeycodeForwardDel, key.MetaCtrlOn)
	default:
		k.sink.PerformEditing(e)
	}
}

// slide moves the cursor one step with arrow keys. Selection sliders
// extend the selection.
func (k *Keyboard) slide(v key.Value, mods key.Modifiers) {
	meta := metaState(mods)
	var code int
	switch v.Slider() {
	case key.SliderCursorLeft:
		code = key.KeycodeDpadLeft
	case key.SliderCursorRight:
		code = key.KeycodeDpadRight
	case key.SliderCursorUp:
		code = key.KeycodeDpadUp
	case key.SliderCursorDown:
		code = key.KeycodeDpadDown
	case key.SliderSelectionLeft:
		code, meta = key.KeycodeDpadLeft, meta|key.MetaShiftOn
	case key.SliderSelectionRight:
		code, meta = key.KeycodeDpadRight, meta|key.MetaShiftOn
	default:
		return
	}
	k.sink.SendKey(code, meta)
}

// evaluateMacro types keys in order. Modifiers active when the macro was
// typed are ignored. Latchable keys modify the keys after them until a key
// is typed; a latchable key that is not special replaces the previous
// ones.
func (k *Keyboard) evaluateMacro(keys []key.Value) {
	mods := key.NoModifiers
	for _, sub := range keys {
		v := k.engine.Modify(sub, mods)
		if v.IsNone() {
			continue
		}
		if v.HasFlags(key.FlagLatch) {
			if !v.HasFlags(key.FlagSpecial) {
				mods = key.NoModifiers
			}
			mods = mods.With(v)
			continue
		}
		if v.Kind() == key.KindSlider {
			k.slide(v, mods)
		} else {
			k.deliver(v, mods)
		}
		mods = key.NoModifiers
	}
}

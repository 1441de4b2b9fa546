package keyboard

import (
	"github.com/dshills/swipekey/internal/input/key"
	"github.com/dshills/swipekey/internal/input/pointer"
)

// handler receives the callbacks of Pointers. It runs with the keyboard
// locked.
type handler struct {
	k *Keyboard
}

var _ pointer.Handler = handler{}

func (h handler) ModifyKey(v key.Value, mods key.Modifiers) key.Value {
	return h.k.resolve(v, mods)
}

func (h handler) ModifyLongPress(v key.Value) key.Value {
	return h.k.engine.ModifyLongPress(v)
}

func (h handler) OnPointerDown(v key.Value, isSwipe bool) {
	h.k.logger.Debug("key down", "key", v, "swipe", isSwipe)
	if v.Kind() == key.KindSlider {
		h.k.slide(v, h.k.ptrs.Modifiers())
	}
}

func (h handler) OnPointerUp(v key.Value, mods key.Modifiers) {
	h.k.deliver(v, mods)
}

func (h handler) OnPointerHold(v key.Value, mods key.Modifiers) {
	h.k.metrics.repeatsTotal.Add(1)
	if v.Kind() == key.KindSlider {
		h.k.slide(v, mods)
		return
	}
	h.k.deliver(v, mods)
}

func (h handler) OnPointerFlagsChanged() {
	h.k.logger.Debug("latched keys changed", "mods", h.k.ptrs.Modifiers())
	h.k.sink.StateChanged()
}

// resolve returns the value typed by v under mods. Digits follow the
// numpad script, then the resolver may override the modifier engine.
func (k *Keyboard) resolve(v key.Value, mods key.Modifiers) key.Value {
	v = k.engine.ApplyNumpadScript(v)
	if r := k.activeResolver(); r != nil {
		out, ok, err := r.Modify(v, mods)
		switch {
		case err != nil:
			k.metrics.scriptErrors.Add(1)
			k.logger.Warn("key script failed", "key", v, "err", err)
		case ok:
			k.metrics.scriptOverrides.Add(1)
			return out
		}
	}
	return k.withShiftLock(k.engine.Modify(v, mods))
}

func (k *Keyboard) activeResolver() Resolver {
	if k.resolver != nil {
		return k.resolver
	}
	if k.script != nil {
		return k.script
	}
	return nil
}

// withShiftLock lets a second tap lock shift.
func (k *Keyboard) withShiftLock(v key.Value) key.Value {
	if !k.doubleTapLockShift || v.Kind() != key.KindModifier || v.Modifier() != key.ModShift {
		return v
	}
	return v.WithFlags(v.Flags() | key.FlagDoubleTapLock)
}

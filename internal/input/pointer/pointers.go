package pointer

import (
	"time"

	"github.com/dshills/swipekey/internal/input/gesture"
	"github.com/dshills/swipekey/internal/input/key"
	"github.com/dshills/swipekey/internal/input/layout"
)

// NoID is the pointer id of latched and fake pointers.
const NoID = -1

var gestureModifier = key.MakeModifier("", key.ModGesture, 0)

// clampedY is the position substituted for touches reported at the top
// edge of the view, which platforms report when clamping upward swipes.
const clampedY = -400

// Handler resolves key values and receives the result of touches.
type Handler interface {
	// ModifyKey returns v under mods. It may return key.None, meaning
	// nothing is typed.
	ModifyKey(v key.Value, mods key.Modifiers) key.Value

	// ModifyLongPress returns the value a special key produces when held.
	ModifyLongPress(v key.Value) key.Value

	// OnPointerDown is called when a key is pressed or when a swipe or
	// gesture changes the value under a finger.
	OnPointerDown(v key.Value, isSwipe bool)

	// OnPointerUp is called when a key is typed.
	OnPointerUp(v key.Value, mods key.Modifiers)

	// OnPointerHold is called on each key repeat.
	OnPointerHold(v key.Value, mods key.Modifiers)

	// OnPointerFlagsChanged is called when keys latch, lock or unlatch
	// without being typed.
	OnPointerFlagsChanged()
}

type pointer struct {
	id      int
	key     *layout.Key
	dir     layout.Direction
	value   key.Value
	downX   float64
	downY   float64
	dist    float64
	mods    key.Modifiers
	flags   Flags
	gesture *gesture.Recognizer

	// swipeDir is the last octant the pointer was in.
	swipeDir layout.Direction

	// token identifies the pending repeat or long press, 0 when none.
	token uint64

	// repeatDist is dist at the first precise repeat, -1 otherwise.
	repeatDist float64
}

func (p *pointer) latched() bool {
	return p.flags&FlagLatched != 0
}

// Pointers coordinates the pointers of one keyboard.
type Pointers struct {
	handler Handler
	sched   Scheduler
	config  Config
	ptrs    []*pointer
	tokens  uint64
}

// New returns a Pointers reporting to h and scheduling repeats on s.
func New(h Handler, s Scheduler, cfg Config) *Pointers {
	return &Pointers{handler: h, sched: s, config: cfg}
}

// Config returns the current settings.
func (ps *Pointers) Config() Config {
	return ps.config
}

// SetConfig replaces the settings. Pending repeats keep their deadline.
func (ps *Pointers) SetConfig(cfg Config) {
	ps.config = cfg
}

// Modifiers returns the values of every pointer, as a modifier set.
func (ps *Pointers) Modifiers() key.Modifiers {
	return ps.modifiers(false)
}

// modifiers collects the pointer values. Latched keys that are not locked
// are left out when skipLatched is set.
func (ps *Pointers) modifiers(skipLatched bool) key.Modifiers {
	values := make([]key.Value, 0, len(ps.ptrs))
	for _, p := range ps.ptrs {
		if p.value.IsNone() {
			continue
		}
		if skipLatched && p.latched() && p.flags&FlagLocked == 0 {
			continue
		}
		values = append(values, p.value)
	}
	return key.NewModifiers(values...)
}

// KeyState returns the flags of the pointer holding a value equal to v.
func (ps *Pointers) KeyState(v key.Value) (Flags, bool) {
	for _, p := range ps.ptrs {
		if !p.value.IsNone() && p.value.Equal(v) {
			return p.flags, true
		}
	}
	return 0, false
}

// IsKeyDown reports whether a pointer, latched or not, is on k.
func (ps *Pointers) IsKeyDown(k *layout.Key) bool {
	for _, p := range ps.ptrs {
		if p.key == k {
			return true
		}
	}
	return false
}

// Len returns the number of pointers, latched ones included.
func (ps *Pointers) Len() int {
	return len(ps.ptrs)
}

// Clear removes every pointer without typing anything.
func (ps *Pointers) Clear() {
	for _, p := range ps.ptrs {
		ps.stopRepeat(p)
	}
	ps.ptrs = nil
}

// OnTouchDown starts tracking a finger pressing k at (x, y).
func (ps *Pointers) OnTouchDown(x, y float64, id int, k *layout.Key) {
	if k == nil || id == NoID || ps.get(id) != nil {
		return
	}
	// Some devices report ghost touches while a finger slides across the
	// keyboard.
	if ps.preciseRepeating() {
		return
	}
	// A key that is already down owns the latched modifiers and clears
	// them when released.
	mods := ps.modifiers(ps.otherKeyDown())
	v := ps.handler.ModifyKey(k.Value(layout.Center), mods)
	p := &pointer{
		id:         id,
		key:        k,
		dir:        layout.Center,
		value:      v,
		downX:      x,
		downY:      y,
		mods:       mods,
		flags:      flagsOf(v),
		repeatDist: -1,
	}
	ps.ptrs = append(ps.ptrs, p)
	ps.startRepeat(p)
	ps.handler.OnPointerDown(v, false)
}

// OnTouchMove follows a finger to (x, y).
func (ps *Pointers) OnTouchMove(x, y float64, id int) {
	p := ps.get(id)
	if p == nil {
		return
	}
	if y == 0 {
		y = clampedY
	}
	dx, dy := x-p.downX, y-p.downY
	p.dist = layout.Distance(dx, dy)
	zone := layout.Zone(dx, dy, ps.config.SwipeDistance)
	if zone != layout.Center {
		p.swipeDir = zone
	}

	if !ps.config.Gestures {
		if zone != p.dir {
			p.dir = zone
			ps.setValue(p, ps.valueAt(p, zone), flagsOf)
		}
		return
	}

	switch {
	case p.gesture == nil:
		if zone == layout.Center {
			return
		}
		p.gesture = gesture.New(layout.Fine(dx, dy))
		p.dir = zone
		ps.setValue(p, ps.valueAt(p, zone), flagsOf)
	case zone == layout.Center:
		if !p.gesture.InProgress() {
			return
		}
		p.gesture.MovedToCenter()
		p.dir = layout.Center
		ps.setValue(p, ps.gestureValue(p), gestureFlags)
	default:
		if p.gesture.ChangedDirection(layout.Fine(dx, dy)) {
			p.dir = zone
			if p.gesture.InProgress() {
				ps.setValue(p, ps.gestureValue(p), gestureFlags)
			} else {
				ps.setValue(p, ps.valueAt(p, zone), flagsOf)
			}
			return
		}
		if p.gesture.State() == gesture.Swiped && zone != p.dir {
			p.dir = zone
			ps.setValue(p, ps.valueAt(p, zone), flagsOf)
		}
	}
}

// gestureFlags drops latching and locking from values produced by
// gestures.
func gestureFlags(key.Value) Flags {
	return 0
}

// OnTouchUp types the key under a lifted finger, or latches it.
func (ps *Pointers) OnTouchUp(id int) {
	p := ps.get(id)
	if p == nil {
		return
	}
	ps.stopRepeat(p)
	if p.gesture != nil {
		p.gesture.PointerUp()
	}

	if latched := ps.getLatched(p.key, p.value); latched != nil {
		ps.remove(p)
		if latched.flags&(FlagFake|FlagDoubleTapLock) == FlagDoubleTapLock {
			ps.lock(latched)
			return
		}
		ps.remove(latched)
		ps.fire(p)
		return
	}

	if p.flags&FlagLatchable != 0 {
		if p.flags&FlagClearLatched != 0 {
			ps.clearLatched()
		}
		p.flags = p.flags&^FlagLatchable | FlagLatched
		p.id = NoID
		ps.handler.OnPointerFlagsChanged()
		return
	}

	ps.clearLatched()
	ps.remove(p)
	ps.fire(p)
}

// OnTouchCancel forgets a finger without typing anything.
func (ps *Pointers) OnTouchCancel(id int) {
	p := ps.get(id)
	if p == nil {
		return
	}
	ps.stopRepeat(p)
	ps.remove(p)
	ps.handler.OnPointerFlagsChanged()
}

// SetFakePointerState latches, locks or releases v on k without a finger,
// for example to enable shift at the start of a sentence. Keys latched by
// a real finger are left alone.
func (ps *Pointers) SetFakePointerState(k *layout.Key, v key.Value, latched, locked bool) {
	p := ps.getLatched(k, v)
	switch {
	case p == nil:
		if !latched {
			return
		}
		ps.addFake(k, v, locked)
	case p.flags&FlagFake == 0:
		return
	case !latched:
		ps.remove(p)
	case locked != (p.flags&FlagLocked != 0):
		ps.remove(p)
		ps.addFake(k, v, locked)
	default:
		return
	}
	ps.handler.OnPointerFlagsChanged()
}

func (ps *Pointers) addFake(k *layout.Key, v key.Value, locked bool) {
	p := &pointer{
		id:         NoID,
		key:        k,
		value:      v,
		flags:      flagsOf(v)&^(FlagLatchable|FlagLockable) | FlagLatched | FlagFake,
		repeatDist: -1,
	}
	if locked {
		p.flags |= FlagLocked
	}
	ps.ptrs = append(ps.ptrs, p)
}

// Fire runs the repeat or long press identified by token. Unknown tokens
// are ignored.
func (ps *Pointers) Fire(token uint64) {
	if token == 0 {
		return
	}
	var p *pointer
	for _, x := range ps.ptrs {
		if x.token == token {
			p = x
			break
		}
	}
	if p == nil {
		return
	}
	if p.value.HasFlags(key.FlagSpecial) || !ps.config.KeyRepeat {
		p.token = 0
		ps.longPress(p)
		return
	}
	interval := ps.config.LongPressInterval
	if ps.config.PreciseRepeat && p.value.HasFlags(key.FlagPreciseRepeat) {
		interval = time.Duration(float64(interval*2) / p.modulate())
	}
	ps.sched.Schedule(token, interval)
	ps.handler.OnPointerHold(p.value, p.mods)
}

// longPress locks lockable keys and applies ModifyLongPress to the other
// ones.
func (ps *Pointers) longPress(p *pointer) {
	if p.flags&FlagLockable != 0 {
		ps.lock(p)
		return
	}
	v := ps.handler.ModifyLongPress(p.value)
	if v.IsNone() || v.Equal(p.value) {
		return
	}
	p.value = v
	p.flags = flagsOf(v)
	ps.handler.OnPointerDown(v, false)
}

func (ps *Pointers) lock(p *pointer) {
	p.flags = p.flags&^FlagDoubleTapLock | FlagLocked
	ps.handler.OnPointerFlagsChanged()
}

// modulate returns the repeat speed factor of a precise repeat. Moving
// further than at the first repeat speeds it up.
func (p *pointer) modulate() float64 {
	if p.repeatDist < 0 {
		p.repeatDist = p.dist
	}
	if p.repeatDist <= 0 {
		return 1
	}
	if p.dist > p.repeatDist*2 {
		p.repeatDist = p.dist / 2
	}
	left := p.repeatDist / 2
	accel := (p.dist - left) / (p.repeatDist - left)
	return min(maxRepeatSpeed, max(minRepeatSpeed, accel))
}

// setValue replaces the value under a finger. Repeat continues across
// precise repeat keys.
func (ps *Pointers) setValue(p *pointer, v key.Value, flags func(key.Value) Flags) {
	if v.IsNone() || v.Equal(p.value) {
		return
	}
	old := p.value
	p.value = v
	p.flags = flags(v)
	if !(old.HasFlags(key.FlagPreciseRepeat) && v.HasFlags(key.FlagPreciseRepeat)) {
		ps.stopRepeat(p)
		ps.startRepeat(p)
	}
	ps.handler.OnPointerDown(v, true)
}

// valueAt resolves the value at d. When the key has nothing at d, the
// neighbouring octants are tried, nearest first, anticlockwise before
// clockwise.
func (ps *Pointers) valueAt(p *pointer, d layout.Direction) key.Value {
	if d == layout.Center {
		return ps.handler.ModifyKey(p.key.Value(layout.Center), p.mods)
	}
	for _, off := range [...]int{0, -1, 1, -2, 2} {
		raw := p.key.Value(d.Rotate(off))
		if raw.IsNone() {
			continue
		}
		if v := ps.handler.ModifyKey(raw, p.mods); !v.IsNone() {
			return v
		}
	}
	return key.None
}

func (ps *Pointers) gestureValue(p *pointer) key.Value {
	withGesture := p.mods.With(gestureModifier)
	switch p.gesture.Type() {
	case gesture.Roundtrip:
		for _, off := range [...]int{0, -1, 1, -2, 2} {
			raw := p.key.Value(p.swipeDir.Rotate(off))
			if raw.IsNone() {
				continue
			}
			if v := ps.handler.ModifyKey(raw, withGesture); !v.IsNone() {
				return v
			}
		}
		return key.None
	case gesture.Anticircle:
		if !p.key.Anticircle.IsNone() {
			return ps.handler.ModifyKey(p.key.Anticircle, p.mods)
		}
		fallthrough
	case gesture.Circle:
		return ps.handler.ModifyKey(p.key.Value(layout.Center), withGesture)
	}
	return p.value
}

func (ps *Pointers) startRepeat(p *pointer) {
	if p.value.IsNone() {
		return
	}
	ps.tokens++
	p.token = ps.tokens
	timeout := ps.config.LongPressTimeout
	if p.value.HasFlags(key.FlagPreciseRepeat) {
		timeout /= 2
	}
	ps.sched.Schedule(p.token, timeout)
}

func (ps *Pointers) stopRepeat(p *pointer) {
	if p.token == 0 {
		return
	}
	ps.sched.Cancel(p.token)
	p.token = 0
	p.repeatDist = -1
}

func (ps *Pointers) fire(p *pointer) {
	if p.value.IsNone() {
		return
	}
	ps.handler.OnPointerUp(p.value, p.mods)
}

func (ps *Pointers) get(id int) *pointer {
	if id == NoID {
		return nil
	}
	for _, p := range ps.ptrs {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (ps *Pointers) getLatched(k *layout.Key, v key.Value) *pointer {
	if v.IsNone() {
		return nil
	}
	for _, p := range ps.ptrs {
		if p.key == k && p.id == NoID && p.value.Equal(v) {
			return p
		}
	}
	return nil
}

func (ps *Pointers) remove(p *pointer) {
	for i, x := range ps.ptrs {
		if x == p {
			ps.ptrs = append(ps.ptrs[:i], ps.ptrs[i+1:]...)
			return
		}
	}
}

// clearLatched removes latched keys that are not locked. Pressed
// latchable keys will not latch when released.
func (ps *Pointers) clearLatched() {
	kept := ps.ptrs[:0]
	for _, p := range ps.ptrs {
		if p.latched() && p.flags&FlagLocked == 0 {
			continue
		}
		if !p.latched() {
			p.flags &^= FlagLatchable
		}
		kept = append(kept, p)
	}
	clear(ps.ptrs[len(kept):])
	ps.ptrs = kept
}

func (ps *Pointers) otherKeyDown() bool {
	for _, p := range ps.ptrs {
		if p.id != NoID && !p.value.HasFlags(key.FlagSpecial) {
			return true
		}
	}
	return false
}

func (ps *Pointers) preciseRepeating() bool {
	for _, p := range ps.ptrs {
		if p.id != NoID && p.value.HasFlags(key.FlagPreciseRepeat) {
			return true
		}
	}
	return false
}

package keyboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/swipekey/internal/config"
	"github.com/dshills/swipekey/internal/input/key"
	"github.com/dshills/swipekey/internal/input/pointer"
	"github.com/dshills/swipekey/internal/logging"
)

type recordSink struct {
	out    []string
	states int
}

func (s *recordSink) CommitText(text string) {
	s.out = append(s.out, "text:"+text)
}

func (s *recordSink) SendKey(code, meta int) {
	s.out = append(s.out, fmt.Sprintf("key:%d/%#x", code, meta))
}

func (s *recordSink) HandleEvent(ev key.Event) {
	s.out = append(s.out, "event:"+ev.String())
}

func (s *recordSink) PerformEditing(e key.Editing) {
	s.out = append(s.out, "edit:"+e.String())
}

func (s *recordSink) StateChanged() {
	s.states++
}

type resolverFunc func(v key.Value, mods key.Modifiers) (key.Value, bool, error)

func (f resolverFunc) Modify(v key.Value, mods key.Modifiers) (key.Value, bool, error) {
	return f(v, mods)
}

type testKeyboard struct {
	*Keyboard
	t     *testing.T
	sink  *recordSink
	timer *pointer.ManualTimer
	ids   int
}

func newTestKeyboard(t *testing.T, cfg *config.Config, opts ...Option) *testKeyboard {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	sink := &recordSink{}
	timer := pointer.NewManualTimer()
	opts = append([]Option{WithScheduler(timer), WithLogger(logging.Discard())}, opts...)
	kb, err := New(cfg, sink, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = kb.Close() })
	return &testKeyboard{Keyboard: kb, t: t, sink: sink, timer: timer}
}

// center returns the center of the key holding the value called name.
func (tk *testKeyboard) center(name string) (float64, float64) {
	tk.t.Helper()
	g := tk.Geometry()
	lk := g.Layout().FindKey(key.ByName(name))
	if lk == nil {
		tk.t.Fatalf("no key %q on the layout", name)
	}
	r, _ := g.Bounds(lk)
	return r.X + r.W/2, r.Y + r.H/2
}

func (tk *testKeyboard) press(name string) int {
	tk.ids++
	x, y := tk.center(name)
	tk.HandleTouch(Touch{Action: TouchDown, ID: tk.ids, X: x, Y: y})
	return tk.ids
}

func (tk *testKeyboard) release(id int) {
	tk.HandleTouch(Touch{Action: TouchUp, ID: id})
}

func (tk *testKeyboard) tap(names ...string) {
	for _, name := range names {
		tk.release(tk.press(name))
	}
}

// swipe presses name and moves the finger by (dx, dy).
func (tk *testKeyboard) swipe(name string, dx, dy float64) int {
	id := tk.press(name)
	x, y := tk.center(name)
	tk.HandleTouch(Touch{Action: TouchMove, ID: id, X: x + dx, Y: y + dy})
	return id
}

func (tk *testKeyboard) advance(d time.Duration) {
	tk.timer.Advance(d, tk.Fire)
}

func (tk *testKeyboard) expect(want ...string) {
	tk.t.Helper()
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(tk.sink.out, want) {
		tk.t.Errorf("output = %q, want %q", tk.sink.out, want)
	}
	tk.sink.out = nil
}

func lockingShift() key.Value {
	sh := key.ByName("shift")
	return sh.WithFlags(sh.Flags() | key.FlagDoubleTapLock)
}

func TestTypeCharacters(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("q", "w")
	tk.expect("text:q", "text:w")
}

func TestSwipeCorner(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	id := tk.swipe("q", 35, -35)
	tk.release(id)
	tk.expect("text:1")

	id = tk.swipe("q", 35, 35)
	tk.release(id)
	tk.expect(fmt.Sprintf("key:%d/0x0", key.KeycodeEscape))
}

func TestShiftLatch(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("shift")
	if flags, ok := tk.KeyState(lockingShift()); !ok || !flags.Has(pointer.FlagLatched) {
		t.Errorf("KeyState(shift) = %v, %v, want latched", flags, ok)
	}
	if tk.sink.states == 0 {
		t.Error("StateChanged not called when shift latched")
	}
	tk.tap("q", "q")
	tk.expect("text:Q", "text:q")
}

func TestDoubleTapLocksShift(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("shift", "shift")
	flags, ok := tk.KeyState(lockingShift())
	if !ok || !flags.Has(pointer.FlagLocked) {
		t.Fatalf("KeyState(shift) = %v, %v, want locked", flags, ok)
	}
	tk.tap("q", "w")
	tk.expect("text:Q", "text:W")
}

func TestDoubleTapLockShiftDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Input.DoubleTapLockShift = false
	tk := newTestKeyboard(t, cfg)

	tk.tap("shift", "shift")
	if _, ok := tk.KeyState(key.ByName("shift")); ok {
		t.Error("second tap did not release shift")
	}
	tk.tap("q")
	tk.expect("text:q")
}

func TestCapsLock(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.release(tk.swipe("shift", 0, 40))
	flags, ok := tk.KeyState(lockingShift())
	if !ok || !flags.Has(pointer.FlagLocked|pointer.FlagFake) {
		t.Fatalf("KeyState(shift) = %v, %v, want fake locked", flags, ok)
	}
	tk.tap("q", "w")
	tk.expect("text:Q", "text:W")

	// Tapping shift releases the fake lock.
	tk.tap("shift", "q")
	tk.expect("text:q")
}

func TestCtrlTurnsCharsIntoKeyevents(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("ctrl", "c")
	tk.expect(fmt.Sprintf("key:%d/%#x", key.KeycodeA+2, key.MetaCtrlOn))

	tk.tap("c")
	tk.expect("text:c")
}

func TestSwipeEvent(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.release(tk.swipe("ctrl", -35, 35))
	tk.expect("event:switch_numeric")
	if _, ok := tk.KeyState(key.ByName("ctrl")); ok {
		t.Error("ctrl latched after swiping to an event")
	}
}

func TestKeyRepeat(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	id := tk.press("backspace")
	del := fmt.Sprintf("key:%d/0x0", key.KeycodeDel)

	tk.advance(599 * time.Millisecond)
	tk.expect()
	tk.advance(time.Millisecond)
	tk.expect(del)
	tk.advance(65 * time.Millisecond)
	tk.expect(del)
	tk.release(id)
	tk.expect(del)

	if got := tk.Metrics().RepeatsTotal; got != 2 {
		t.Errorf("RepeatsTotal = %d, want 2", got)
	}
}

func TestKeyRepeatDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Input.KeyRepeat = false
	tk := newTestKeyboard(t, cfg)

	id := tk.press("backspace")
	tk.advance(2 * time.Second)
	tk.expect()
	tk.release(id)
	tk.expect(fmt.Sprintf("key:%d/0x0", key.KeycodeDel))
}

func TestSliderMovesOnArrivalAndHold(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	right := fmt.Sprintf("key:%d/0x0", key.KeycodeDpadRight)

	id := tk.swipe("space", 40, 0)
	tk.expect(right)

	tk.advance(300 * time.Millisecond)
	tk.expect(right)

	tk.release(id)
	tk.expect()
}

func TestSliderWithShiftSelects(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("shift")
	tk.release(tk.swipe("space", -40, 0))
	tk.expect(fmt.Sprintf("key:%d/%#x", key.KeycodeDpadLeft, key.MetaShiftOn))
}

func TestResolverOverrides(t *testing.T) {
	q := key.ByName("q")
	w := key.ByName("w")
	failure := errors.New("script failure")
	r := resolverFunc(func(v key.Value, mods key.Modifiers) (key.Value, bool, error) {
		switch {
		case v.Equal(q):
			return key.ByName("delete_word"), true, nil
		case v.Equal(w):
			return key.None, true, nil
		case v.Char() == 'e':
			return key.None, false, failure
		}
		return key.None, false, nil
	})
	tk := newTestKeyboard(t, nil, WithResolver(r))

	tk.tap("q", "w", "e", "r")
	tk.expect(fmt.Sprintf("key:%d/%#x", key.KeycodeDel, key.MetaCtrlOn), "text:e", "text:r")

	m := tk.Metrics()
	if m.ScriptOverrides != 2 {
		t.Errorf("ScriptOverrides = %d, want 2", m.ScriptOverrides)
	}
	if m.ScriptErrors != 1 {
		t.Errorf("ScriptErrors = %d, want 1", m.ScriptErrors)
	}
}

func TestMacroEvaluation(t *testing.T) {
	macro := key.MakeMacro("m", []key.Value{
		key.ByName("ctrl"),
		key.MakeChar('a'),
		key.MakeChar('b'),
		key.ByName("cursor_left"),
		key.ByName("copy"),
	}, 0)
	r := resolverFunc(func(v key.Value, mods key.Modifiers) (key.Value, bool, error) {
		if v.Char() == 'q' {
			return macro, true, nil
		}
		return key.None, false, nil
	})
	tk := newTestKeyboard(t, nil, WithResolver(r))

	// Latched modifiers do not apply to the keys of a macro.
	tk.tap("shift", "q")
	tk.expect(
		fmt.Sprintf("key:%d/%#x", key.KeycodeA, key.MetaCtrlOn),
		"text:b",
		fmt.Sprintf("key:%d/0x0", key.KeycodeDpadLeft),
		"edit:copy",
	)
}

func TestMacroFromKeyDefinition(t *testing.T) {
	cfg := config.Default()
	cfg.Modmap = []config.ModmapEntry{{Modifier: "fn", From: "q", To: "qq:'ab',enter"}}
	tk := newTestKeyboard(t, cfg)

	tk.tap("fn", "q")
	tk.expect("text:ab", fmt.Sprintf("key:%d/0x0", key.KeycodeEnter))
}

func TestNumpadScript(t *testing.T) {
	cfg := config.Default()
	cfg.Input.NumpadScript = "persian"
	tk := newTestKeyboard(t, cfg)

	tk.release(tk.swipe("q", 35, -35))
	tk.expect("text:۱")
}

func TestKeyScript(t *testing.T) {
	dir := t.TempDir()
	script := `
function modify_key(k, mods)
  if k.char == "q" then
    return "z"
  end
  return nil
end
`
	if err := os.WriteFile(filepath.Join(dir, "keys.lua"), []byte(script), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Script = filepath.Join(dir, "keys.lua")
	tk := newTestKeyboard(t, cfg)

	tk.tap("q", "w")
	tk.expect("text:z", "text:w")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Input.SwipeDistance = 0
	if _, err := New(cfg, &recordSink{}, WithScheduler(pointer.NewManualTimer())); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New() error = %v, want ErrValidationFailed", err)
	}

	cfg = config.Default()
	cfg.Script = filepath.Join(t.TempDir(), "missing.lua")
	if _, err := New(cfg, &recordSink{}, WithScheduler(pointer.NewManualTimer())); err == nil {
		t.Error("New() with a missing script succeeded")
	}
}

func TestReloadKeepsLatchedKeys(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("shift")

	cfg := config.Default()
	cfg.Input.SwipeDistance = 80
	if err := tk.Reload(cfg); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if _, ok := tk.KeyState(lockingShift()); !ok {
		t.Error("latched shift lost by Reload")
	}

	// Swipes shorter than the new distance type the center.
	tk.release(tk.swipe("w", 35, -35))
	tk.expect("text:W")

	if got := tk.Metrics().ReloadsTotal; got != 1 {
		t.Errorf("ReloadsTotal = %d, want 1", got)
	}
}

func TestReloadRejectsInvalidConfig(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	cfg := config.Default()
	cfg.Modmap = []config.ModmapEntry{{Modifier: "hyper", From: "a", To: "b"}}
	if err := tk.Reload(cfg); err == nil {
		t.Fatal("Reload() accepted an invalid modmap")
	}
	tk.tap("q")
	tk.expect("text:q")
}

func TestReloadLayout(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.txt"), []byte("x | y\nshift | z\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tk := newTestKeyboard(t, nil)
	tk.tap("shift")

	cfg := config.Default()
	cfg.Layout = filepath.Join(dir, "tiny.txt")
	if err := tk.Reload(cfg); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if name := tk.Geometry().Layout().Name; name != "tiny" {
		t.Errorf("layout = %q, want tiny", name)
	}
	if tk.Modifiers().Len() != 0 {
		t.Error("pointers kept across a layout change")
	}
	tk.tap("y")
	tk.expect("text:y")
}

func TestSetShiftState(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.SetShiftState(true, false)
	tk.tap("q", "q")
	tk.expect("text:Q", "text:q")

	tk.SetShiftState(true, false)
	tk.SetShiftState(false, false)
	tk.tap("q")
	tk.expect("text:q")
}

func TestSetSelectionState(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.SetSelectionState(true)
	if !tk.Modifiers().Has(key.ModSelectionMode) {
		t.Error("selection mode not active")
	}
	tk.SetSelectionState(false)
	if tk.Modifiers().Has(key.ModSelectionMode) {
		t.Error("selection mode still active")
	}
}

func TestClear(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.tap("shift")
	id := tk.press("q")
	x, y := tk.center("q")
	lk := tk.Geometry().KeyAt(x, y)
	if !tk.IsKeyDown(lk) {
		t.Error("IsKeyDown(q) = false while pressed")
	}

	tk.Clear()
	if tk.Modifiers().Len() != 0 {
		t.Errorf("Modifiers() = %v after Clear", tk.Modifiers())
	}
	tk.release(id)
	tk.expect()
}

func TestTouchCancel(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	id := tk.press("q")
	tk.HandleTouch(Touch{Action: TouchCancel, ID: id})
	tk.release(id)
	tk.expect()
}

func TestResize(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	tk.Resize(500, 200)
	if w := tk.Geometry().KeyWidth(); w != 50 {
		t.Errorf("KeyWidth() = %v, want 50", w)
	}
	tk.tap("p")
	tk.expect("text:p")
}

func TestCloseStopsInput(t *testing.T) {
	tk := newTestKeyboard(t, nil)
	if err := tk.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	tk.tap("q")
	tk.expect()
	if err := tk.Reload(config.Default()); !errors.Is(err, ErrClosed) {
		t.Errorf("Reload() after Close = %v, want ErrClosed", err)
	}
	if err := tk.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSession(t *testing.T) {
	a := newTestKeyboard(t, nil)
	b := newTestKeyboard(t, nil)
	if a.Session() == "" || a.Session() == b.Session() {
		t.Errorf("sessions %q and %q are not unique", a.Session(), b.Session())
	}
}

func TestRun(t *testing.T) {
	sink := &recordSink{}
	kb, err := New(config.Default(), sink, WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer kb.Close()

	g := kb.Geometry()
	r, _ := g.Bounds(g.Layout().FindKey(key.ByName("q")))
	x, y := r.X+r.W/2, r.Y+r.H/2

	touches := make(chan Touch, 4)
	touches <- Touch{Action: TouchDown, ID: 1, X: x, Y: y}
	touches <- Touch{Action: TouchUp, ID: 1}
	close(touches)

	if err := kb.Run(context.Background(), touches); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := []string{"text:q"}; !reflect.DeepEqual(sink.out, want) {
		t.Errorf("output = %q, want %q", sink.out, want)
	}
	if got := kb.Metrics().TouchesTotal; got != 2 {
		t.Errorf("TouchesTotal = %d, want 2", got)
	}
}

func TestRunRepeatsKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Input.LongPressTimeoutMS = 10
	cfg.Input.LongPressIntervalMS = 10
	sink := &recordSink{}
	kb, err := New(cfg, sink, WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer kb.Close()

	g := kb.Geometry()
	r, _ := g.Bounds(g.Layout().FindKey(key.ByName("backspace")))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	touches := make(chan Touch, 1)
	touches <- Touch{Action: TouchDown, ID: 1, X: r.X + r.W/2, Y: r.Y + r.H/2}

	if err := kb.Run(ctx, touches); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want DeadlineExceeded", err)
	}
	if kb.Metrics().RepeatsTotal == 0 {
		t.Error("held key did not repeat")
	}
}

func TestTouchActionString(t *testing.T) {
	tests := []struct {
		a    TouchAction
		want string
	}{
		{TouchDown, "down"},
		{TouchMove, "move"},
		{TouchUp, "up"},
		{TouchCancel, "cancel"},
		{TouchAction(9), "TouchAction(9)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestMetaState(t *testing.T) {
	mods := key.NewModifiers(key.ByName("ctrl"), key.ByName("alt"), key.ByName("shift"), key.ByName("meta"), key.ByName("fn"))
	want := key.MetaCtrlOn | key.MetaAltOn | key.MetaShiftOn | key.MetaMetaOn
	if got := metaState(mods); got != want {
		t.Errorf("metaState() = %#x, want %#x", got, want)
	}
	if got := metaState(key.NoModifiers); got != 0 {
		t.Errorf("metaState(none) = %#x, want 0", got)
	}
}

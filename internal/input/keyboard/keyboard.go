package keyboard

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/swipekey/internal/config"
	"github.com/dshills/swipekey/internal/input/key"
	"github.com/dshills/swipekey/internal/input/layout"
	"github.com/dshills/swipekey/internal/input/modifier"
	"github.com/dshills/swipekey/internal/input/pointer"
	"github.com/dshills/swipekey/internal/plugin/lua"
)

// ErrClosed is returned when using a closed keyboard.
var ErrClosed = errors.New("keyboard is closed")

// Default size of the keyboard area, in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 400
)

// Sink receives the output of a keyboard.
type Sink interface {
	// CommitText inserts text at the cursor.
	CommitText(text string)

	// SendKey sends a press and release of a platform key code with the
	// given meta state.
	SendKey(code, meta int)

	// HandleEvent performs an application event.
	HandleEvent(ev key.Event)

	// PerformEditing performs an editing action.
	PerformEditing(e key.Editing)

	// StateChanged is called when keys latch, lock or unlatch.
	StateChanged()
}

// Resolver intercepts key resolution in front of the modifier engine. ok
// is false when v is left to the engine; key.None with ok set suppresses
// the key.
type Resolver interface {
	Modify(v key.Value, mods key.Modifiers) (out key.Value, ok bool, err error)
}

// Keyboard turns a touch stream into resolved keys.
type Keyboard struct {
	mu sync.Mutex

	sink    Sink
	logger  *slog.Logger
	session string
	metrics *Metrics

	width, height float64
	geom          *layout.Geometry
	layoutRef     string

	// detached holds the keys of fake pointers whose value is not on the
	// layout.
	detached map[string]*layout.Key

	engine *modifier.Engine
	ptrs   *pointer.Pointers
	sched  pointer.Scheduler
	ticks  <-chan uint64
	timer  *pointer.ChannelTimer

	resolver Resolver
	script   *lua.Hook

	doubleTapLockShift bool
	closed             bool
}

// Option configures a Keyboard.
type Option func(*Keyboard)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Keyboard) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithScheduler sets the scheduler of key repeats. The default is a
// ChannelTimer whose ticks are consumed by Run. With another scheduler the
// caller fires due tokens with Fire.
func WithScheduler(s pointer.Scheduler) Option {
	return func(k *Keyboard) {
		k.sched = s
	}
}

// WithResolver installs r in front of the modifier engine. The key script
// of the configuration is then not loaded.
func WithResolver(r Resolver) Option {
	return func(k *Keyboard) {
		k.resolver = r
	}
}

// WithSize sets the size of the keyboard area in pixels.
func WithSize(width, height float64) Option {
	return func(k *Keyboard) {
		k.width, k.height = width, height
	}
}

// New returns a keyboard configured by cfg delivering to sink.
func New(cfg *config.Config, sink Sink, opts ...Option) (*Keyboard, error) {
	k := &Keyboard{
		sink:     sink,
		logger:   slog.Default(),
		session:  uuid.NewString(),
		metrics:  newMetrics(),
		width:    DefaultWidth,
		height:   DefaultHeight,
		detached: make(map[string]*layout.Key),
	}
	for _, opt := range opts {
		opt(k)
	}
	k.logger = k.logger.With("session", k.session)

	if k.sched == nil {
		k.timer = pointer.NewChannelTimer()
		k.sched = k.timer
	}
	if c, ok := k.sched.(interface{ C() <-chan uint64 }); ok {
		k.ticks = c.C()
	}

	s, err := k.build(cfg)
	if err != nil {
		if k.timer != nil {
			k.timer.Stop()
		}
		return nil, err
	}
	k.ptrs = pointer.New(handler{k}, k.sched, s.pointer)
	k.install(s)
	k.logger.Debug("keyboard created", "layout", s.layout.Name)
	return k, nil
}

// settings is a validated configuration ready to be installed.
type settings struct {
	layout             *layout.Layout
	layoutRef          string
	engine             *modifier.Engine
	script             *lua.Hook
	pointer            pointer.Config
	doubleTapLockShift bool
}

func (k *Keyboard) build(cfg *config.Config) (*settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := cfg.BuildLayout()
	if err != nil {
		return nil, err
	}
	mm, err := cfg.BuildModmap()
	if err != nil {
		return nil, err
	}
	s := &settings{
		layout:    l,
		layoutRef: cfg.Layout,
		engine: modifier.New(
			modifier.WithModmap(mm),
			modifier.WithNumpadScript(cfg.Input.NumpadScript),
		),
		pointer:            cfg.PointerConfig(),
		doubleTapLockShift: cfg.Input.DoubleTapLockShift,
	}
	if cfg.Layout != config.BuiltinLayout && !filepath.IsAbs(cfg.Layout) {
		s.layoutRef = filepath.Join(cfg.Dir(), cfg.Layout)
	}
	if path := cfg.ScriptPath(); path != "" && k.resolver == nil {
		h, err := lua.LoadHook(path, lua.WithLogger(k.logger))
		if err != nil {
			return nil, err
		}
		s.script = h
	}
	return s, nil
}

// install swaps in s. The layout is replaced, and the pointers cleared,
// only when the layout setting changed.
func (k *Keyboard) install(s *settings) {
	k.engine = s.engine
	k.ptrs.SetConfig(s.pointer)
	k.doubleTapLockShift = s.doubleTapLockShift

	if k.geom == nil || s.layoutRef != k.layoutRef {
		k.ptrs.Clear()
		k.geom = layout.NewGeometry(s.layout, k.width, k.height)
		k.layoutRef = s.layoutRef
	}

	if k.script != nil {
		if err := k.script.Close(); err != nil {
			k.logger.Warn("closing key script", "err", err)
		}
	}
	k.script = s.script
}

// Reload applies a new configuration. Latched keys survive unless the
// layout changed.
func (k *Keyboard) Reload(cfg *config.Config) error {
	s, err := k.build(cfg)
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		if s.script != nil {
			_ = s.script.Close()
		}
		return ErrClosed
	}
	k.install(s)
	k.metrics.reloadsTotal.Add(1)
	k.logger.Debug("keyboard settings applied", "layout", s.layout.Name)
	k.sink.StateChanged()
	return nil
}

// HandleTouch processes one touch event.
func (k *Keyboard) HandleTouch(t Touch) {
	start := time.Now()

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return
	}
	switch t.Action {
	case TouchDown:
		k.ptrs.OnTouchDown(t.X, t.Y, t.ID, k.geom.KeyAt(t.X, t.Y))
	case TouchMove:
		k.ptrs.OnTouchMove(t.X, t.Y, t.ID)
	case TouchUp:
		k.ptrs.OnTouchUp(t.ID)
	case TouchCancel:
		k.ptrs.OnTouchCancel(t.ID)
	}
	k.metrics.recordTouch(time.Since(start))
}

// Fire runs the key repeat or long press identified by token.
func (k *Keyboard) Fire(token uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return
	}
	k.ptrs.Fire(token)
}

// Run handles touches until ctx is done or touches is closed. With the
// default scheduler it also fires key repeats.
func (k *Keyboard) Run(ctx context.Context, touches <-chan Touch) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-touches:
			if !ok {
				return nil
			}
			k.HandleTouch(t)
		case token := <-k.ticks:
			k.Fire(token)
		}
	}
}

// Resize places the layout on a new area. Pointers are kept; fingers are
// tracked relative to where they went down.
func (k *Keyboard) Resize(width, height float64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.width, k.height = width, height
	k.geom = layout.NewGeometry(k.geom.Layout(), width, height)
}

// Geometry returns the placed layout.
func (k *Keyboard) Geometry() *layout.Geometry {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.geom
}

// SetShiftState latches, locks or releases shift without a finger, as
// done by auto-capitalisation. A shift latched by a finger is left alone.
func (k *Keyboard) SetShiftState(latched, locked bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return
	}
	k.setFake("shift", latched, locked)
}

// SetSelectionState enables the selection mode modifier while text is
// selected.
func (k *Keyboard) SetSelectionState(active bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return
	}
	k.setFake("selection_mode", active, active)
}

func (k *Keyboard) setFake(name string, latched, locked bool) {
	raw, ok := key.Special(name)
	if !ok {
		return
	}
	lk := k.geom.Layout().FindKey(raw)
	if lk == nil {
		lk = k.detached[name]
		if lk == nil {
			lk = layout.NewKey(raw)
			k.detached[name] = lk
		}
	}
	v := k.resolve(raw, key.NoModifiers)
	if v.IsNone() {
		return
	}
	k.ptrs.SetFakePointerState(lk, v, latched, locked)
}

// KeyState returns the pointer flags of a latched or pressed key value.
func (k *Keyboard) KeyState(v key.Value) (pointer.Flags, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ptrs.KeyState(v)
}

// IsKeyDown reports whether lk is pressed or latched.
func (k *Keyboard) IsKeyDown(lk *layout.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ptrs.IsKeyDown(lk)
}

// Modifiers returns the values of the pressed and latched keys.
func (k *Keyboard) Modifiers() key.Modifiers {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ptrs.Modifiers()
}

// Clear forgets every pointer, latched keys included.
func (k *Keyboard) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.ptrs.Clear()
	k.sink.StateChanged()
}

// Session returns the identifier of the keyboard in logs.
func (k *Keyboard) Session() string {
	return k.session
}

// Metrics returns the activity counters.
func (k *Keyboard) Metrics() MetricsSnapshot {
	return k.metrics.Snapshot()
}

// Close stops key repeats and releases the key script.
func (k *Keyboard) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true
	k.ptrs.Clear()
	if k.timer != nil {
		k.timer.Stop()
	}
	if k.script != nil {
		return k.script.Close()
	}
	return nil
}

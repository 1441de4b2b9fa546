package lua

import (
	"fmt"
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/swipekey/internal/input/key"
)

// HookFunction is the global function a key script defines.
const HookFunction = "modify_key"

// Hook runs a script's modify_key function in front of the modifier engine.
// A Hook is not safe for concurrent use.
type Hook struct {
	state  *State
	bridge *Bridge
	logger *slog.Logger
}

// HookOption configures a Hook.
type HookOption func(*hookOptions)

type hookOptions struct {
	logger  *slog.Logger
	timeout time.Duration
}

// WithLogger sets the logger receiving swipekey.log output.
func WithLogger(l *slog.Logger) HookOption {
	return func(o *hookOptions) {
		o.logger = l
	}
}

// WithTimeout sets the timeout of each modify_key call.
func WithTimeout(d time.Duration) HookOption {
	return func(o *hookOptions) {
		o.timeout = d
	}
}

// LoadHook loads the key script at path.
func LoadHook(path string, opts ...HookOption) (*Hook, error) {
	return newHook(func(s *State) error { return s.DoFile(path) }, path, opts)
}

// NewHook loads a key script from source.
func NewHook(src string, opts ...HookOption) (*Hook, error) {
	return newHook(func(s *State) error { return s.DoString(src) }, "<string>", opts)
}

func newHook(load func(*State) error, name string, opts []HookOption) (*Hook, error) {
	o := hookOptions{logger: slog.Default(), timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	state := NewState(WithExecutionTimeout(o.timeout))
	h := &Hook{
		state:  state,
		bridge: NewBridge(state.L),
		logger: o.logger.With("script", name),
	}
	state.RegisterModule("swipekey", map[string]lua.LGFunction{
		"log": h.luaLog,
	})

	if err := load(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("load key script %s: %w", name, err)
	}
	if !state.HasFunction(HookFunction) {
		state.Close()
		return nil, fmt.Errorf("load key script %s: %w: %s", name, ErrNoFunction, HookFunction)
	}
	return h, nil
}

func (h *Hook) luaLog(L *lua.LState) int {
	h.logger.Info(L.CheckString(1))
	return 0
}

// Modify calls modify_key(key, mods). ok is false when the script returned
// nil and the value should be resolved normally. A script returning false
// or "" suppresses the key, which is reported as key.None with ok set.
func (h *Hook) Modify(v key.Value, mods key.Modifiers) (key.Value, bool, error) {
	results, err := h.state.Call(HookFunction, h.bridge.KeyTable(v), h.bridge.ModsTable(mods))
	if err != nil {
		return key.None, false, err
	}
	if len(results) == 0 {
		return key.None, false, nil
	}
	return h.bridge.ToValue(results[0])
}

// Close releases the script state.
func (h *Hook) Close() error {
	return h.state.Close()
}

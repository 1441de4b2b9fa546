package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dshills/swipekey/internal/config/loader"
	"github.com/dshills/swipekey/internal/input/key"
	"github.com/dshills/swipekey/internal/input/layout"
	"github.com/dshills/swipekey/internal/input/modifier"
	"github.com/dshills/swipekey/internal/input/pointer"
	"github.com/dshills/swipekey/internal/logging"
)

// BuiltinLayout is the name of the layout compiled into the program.
const BuiltinLayout = "qwerty"

// Config holds the keyboard settings.
type Config struct {
	// Layout is BuiltinLayout or the path of a layout file. Relative paths
	// are resolved against the directory of the settings file.
	Layout string `toml:"layout" yaml:"layout"`

	// Script is the path of a Lua key script, empty for none.
	Script string `toml:"script" yaml:"script"`

	Input  InputConfig   `toml:"input" yaml:"input"`
	Log    LogConfig     `toml:"log" yaml:"log"`
	Modmap []ModmapEntry `toml:"modmap" yaml:"modmap"`

	// dir is the directory of the file the config was loaded from.
	dir string
}

// InputConfig holds the touch handling settings.
type InputConfig struct {
	SwipeDistance       float64 `toml:"swipe_distance" yaml:"swipe_distance"`
	LongPressTimeoutMS  int     `toml:"long_press_timeout_ms" yaml:"long_press_timeout_ms"`
	LongPressIntervalMS int     `toml:"long_press_interval_ms" yaml:"long_press_interval_ms"`
	KeyRepeat           bool    `toml:"key_repeat" yaml:"key_repeat"`
	PreciseRepeat       bool    `toml:"precise_repeat" yaml:"precise_repeat"`
	DoubleTapLockShift  bool    `toml:"double_tap_lock_shift" yaml:"double_tap_lock_shift"`
	CircleGestures      bool    `toml:"circle_gestures" yaml:"circle_gestures"`
	NumpadScript        string  `toml:"numpad_script" yaml:"numpad_script"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ModmapEntry remaps a key under a modifier. From and To are key
// definitions.
type ModmapEntry struct {
	Modifier string `toml:"modifier" yaml:"modifier"`
	From     string `toml:"from" yaml:"from"`
	To       string `toml:"to" yaml:"to"`
}

// Default returns the default settings.
func Default() *Config {
	p := pointer.DefaultConfig()
	return &Config{
		Layout: BuiltinLayout,
		Input: InputConfig{
			SwipeDistance:       p.SwipeDistance,
			LongPressTimeoutMS:  int(p.LongPressTimeout / time.Millisecond),
			LongPressIntervalMS: int(p.LongPressInterval / time.Millisecond),
			KeyRepeat:           p.KeyRepeat,
			PreciseRepeat:       p.PreciseRepeat,
			DoubleTapLockShift:  true,
			CircleGestures:      p.Gestures,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Modmap = append([]ModmapEntry(nil), c.Modmap...)
	return &out
}

// Dir returns the directory relative paths are resolved against.
func (c *Config) Dir() string {
	return c.dir
}

// PointerConfig returns the settings of the pointer coordinator.
func (c *Config) PointerConfig() pointer.Config {
	return pointer.Config{
		SwipeDistance:     c.Input.SwipeDistance,
		LongPressTimeout:  time.Duration(c.Input.LongPressTimeoutMS) * time.Millisecond,
		LongPressInterval: time.Duration(c.Input.LongPressIntervalMS) * time.Millisecond,
		KeyRepeat:         c.Input.KeyRepeat,
		PreciseRepeat:     c.Input.PreciseRepeat,
		Gestures:          c.Input.CircleGestures,
	}
}

// LoggingConfig returns the logger settings. Unknown names fall back to
// the defaults; Validate reports them.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	if format, err := logging.ParseFormat(c.Log.Format); err == nil {
		cfg.Format = format
	}
	return cfg
}

// BuildModmap parses the modmap entries.
func (c *Config) BuildModmap() (*modifier.Modmap, error) {
	m := modifier.NewModmap()
	for i, e := range c.Modmap {
		layer, from, to, err := e.parse(i)
		if err != nil {
			return nil, err
		}
		m.Add(layer, from, to)
	}
	return m, nil
}

// parse parses the i'th modmap entry.
func (e ModmapEntry) parse(i int) (modifier.Layer, key.Value, key.Value, error) {
	layer, ok := modifier.ParseLayer(e.Modifier)
	if !ok {
		return 0, key.None, key.None, modmapError(i, "modifier", e.Modifier, ErrCodeInvalidEnum,
			"must be one of shift, fn, ctrl, gesture")
	}
	from, err := parseKeyDef(e.From)
	if err != nil {
		return 0, key.None, key.None, modmapError(i, "from", e.From, ErrCodePatternMismatch, err.Error())
	}
	to, err := parseKeyDef(e.To)
	if err != nil {
		return 0, key.None, key.None, modmapError(i, "to", e.To, ErrCodePatternMismatch, err.Error())
	}
	return layer, from, to, nil
}

func modmapError(i int, field, value string, code ValidationErrorCode, msg string) error {
	return &ValidationError{
		Path:    fmt.Sprintf("modmap[%d].%s", i, field),
		Message: msg,
		Value:   value,
		Code:    code,
	}
}

// parseKeyDef parses a key definition. A lone character always types
// itself, even when it is the parser's separator.
func parseKeyDef(def string) (key.Value, error) {
	if def == "" {
		return key.None, errors.New("empty key definition")
	}
	if len([]rune(def)) == 1 {
		return key.ByName(def), nil
	}
	return key.Parse(def)
}

// BuildLayout returns the configured layout.
func (c *Config) BuildLayout() (*layout.Layout, error) {
	return c.BuildLayoutFS(loader.DefaultFS())
}

// BuildLayoutFS is BuildLayout reading layout files from fsys.
func (c *Config) BuildLayoutFS(fsys loader.FileSystem) (*layout.Layout, error) {
	if c.Layout == "" || c.Layout == BuiltinLayout {
		return layout.QWERTY(), nil
	}
	path := c.Layout
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	l, err := layout.ParseRows(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ScriptPath returns the resolved path of the key script, empty for none.
func (c *Config) ScriptPath() string {
	if c.Script == "" || filepath.IsAbs(c.Script) || c.dir == "" {
		return c.Script
	}
	return filepath.Join(c.dir, c.Script)
}

package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dshills/swipekey/internal/config/loader"
)

// EnvPrefix prefixes the environment variables overriding settings.
const EnvPrefix = "SWIPEKEY_"

// settings maps setting keys to their setters. Keys follow the file layout.
var settings = map[string]func(c *Config, raw string) error{
	"layout":                       func(c *Config, s string) error { c.Layout = s; return nil },
	"script":                       func(c *Config, s string) error { c.Script = s; return nil },
	"input.swipe_distance":         floatSetter(func(c *Config) *float64 { return &c.Input.SwipeDistance }),
	"input.long_press_timeout_ms":  intSetter(func(c *Config) *int { return &c.Input.LongPressTimeoutMS }),
	"input.long_press_interval_ms": intSetter(func(c *Config) *int { return &c.Input.LongPressIntervalMS }),
	"input.key_repeat":             boolSetter(func(c *Config) *bool { return &c.Input.KeyRepeat }),
	"input.precise_repeat":         boolSetter(func(c *Config) *bool { return &c.Input.PreciseRepeat }),
	"input.double_tap_lock_shift":  boolSetter(func(c *Config) *bool { return &c.Input.DoubleTapLockShift }),
	"input.circle_gestures":        boolSetter(func(c *Config) *bool { return &c.Input.CircleGestures }),
	"input.numpad_script":          func(c *Config, s string) error { c.Input.NumpadScript = s; return nil },
	"log.level":                    func(c *Config, s string) error { c.Log.Level = s; return nil },
	"log.format":                   func(c *Config, s string) error { c.Log.Format = s; return nil },
}

func floatSetter(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("expected a number: %w", err)
		}
		*field(c) = f
		return nil
	}
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("expected an integer: %w", err)
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, s string) error {
		b, ok := loader.ParseBool(s)
		if !ok {
			return fmt.Errorf("expected a boolean, got %q", s)
		}
		*field(c) = b
		return nil
	}
}

// Set sets the setting key, for example "input.swipe_distance", from its
// text form.
func (c *Config) Set(key, raw string) error {
	set, ok := settings[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if err := set(c, raw); err != nil {
		return &ValidationError{Path: key, Message: err.Error(), Value: raw, Code: ErrCodeTypeMismatch}
	}
	return nil
}

// Load reads the settings file at path over the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path, NewEnvLoader())
}

// NewEnvLoader returns the loader of the SWIPEKEY_* overrides. Each setting
// key maps to the upper-cased key with dots replaced, for example
// SWIPEKEY_INPUT_SWIPE_DISTANCE; the input section also has a short form
// without INPUT_.
func NewEnvLoader() *loader.EnvLoader {
	l := loader.NewEnvLoader(EnvPrefix)
	for key := range settings {
		l.AddMapping(envName(key), key)
		if short, ok := strings.CutPrefix(key, "input."); ok {
			l.AddMapping(envName(short), key)
		}
	}
	return l
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// LoadFS is Load reading from fsys. env may be nil to skip environment
// overrides.
func LoadFS(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Config, error) {
	c := Default()
	if path != "" {
		if _, err := loader.LoadFile(fsys, path, c); err != nil {
			return nil, err
		}
		c.dir = filepath.Dir(path)
	}
	if env != nil {
		for _, o := range env.Load() {
			if err := c.Set(o.Key, o.Value); err != nil {
				return nil, fmt.Errorf("environment variable %s: %w", o.Env, err)
			}
		}
	}
	return c, nil
}

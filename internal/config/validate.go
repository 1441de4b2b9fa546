package config

import (
	"errors"
	"strings"

	"github.com/dshills/swipekey/internal/input/compose"
	"github.com/dshills/swipekey/internal/logging"
)

// NumpadScripts returns the digit scripts accepted by input.numpad_script.
func NumpadScripts() []string {
	var out []string
	for _, name := range compose.Default().Names() {
		if script, ok := strings.CutPrefix(name, "numpad_"); ok {
			out = append(out, script)
		}
	}
	return out
}

// Validate checks every setting and returns all failures joined. Each
// failure is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if strings.TrimSpace(c.Layout) == "" {
		add("layout", "must not be empty", c.Layout, ErrCodeRequiredMissing)
	}
	if c.Input.SwipeDistance <= 0 {
		add("input.swipe_distance", "must be positive", c.Input.SwipeDistance, ErrCodeOutOfRange)
	}
	if c.Input.LongPressTimeoutMS <= 0 {
		add("input.long_press_timeout_ms", "must be positive", c.Input.LongPressTimeoutMS, ErrCodeOutOfRange)
	}
	if c.Input.LongPressIntervalMS <= 0 {
		add("input.long_press_interval_ms", "must be positive", c.Input.LongPressIntervalMS, ErrCodeOutOfRange)
	}
	if s := c.Input.NumpadScript; s != "" {
		if _, ok := compose.Default().Root("numpad_" + s); !ok {
			add("input.numpad_script", "must be one of "+strings.Join(NumpadScripts(), ", "), s, ErrCodeInvalidEnum)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		add("log.level", "must be one of debug, info, warn, error", c.Log.Level, ErrCodeInvalidEnum)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		add("log.format", "must be text or json", c.Log.Format, ErrCodeInvalidEnum)
	}
	for i, e := range c.Modmap {
		if _, _, _, err := e.parse(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Package config loads the swipekey settings.
//
// Settings are read from a TOML or YAML file over the built-in defaults,
// then SWIPEKEY_* environment variables override single settings:
//
//	layout = "qwerty"
//	script = "keys.lua"
//
//	[input]
//	swipe_distance = 30
//	long_press_timeout_ms = 600
//	long_press_interval_ms = 65
//	key_repeat = true
//	precise_repeat = true
//	double_tap_lock_shift = true
//	circle_gestures = true
//	numpad_script = "persian"
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[[modmap]]
//	modifier = "shift"
//	from = ","
//	to = ";"
//
// Modmap entries remap a key under the shift, fn, ctrl or gesture modifier.
// from and to are key definitions, for example "esc" or "⇥:tab".
//
// # Sub-packages
//
//   - loader: file decoding (TOML, YAML) and environment overrides
//   - watcher: live reload of the settings file
package config

package loader

import (
	"os"
	"sort"
	"strings"
)

// EnvLoader reads setting overrides from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "SWIPEKEY_")
	mapping map[string]string // Env var -> setting key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an environment loader. The prefix should include the
// trailing underscore (e.g., "SWIPEKEY_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		lookup:  os.LookupEnv,
	}
}

// WithLookup replaces os.LookupEnv, for tests.
func (l *EnvLoader) WithLookup(lookup func(string) (string, bool)) *EnvLoader {
	l.lookup = lookup
	return l
}

// AddMapping maps an environment variable to a setting key. A variable name
// without the prefix gets it prepended.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if !strings.HasPrefix(envVar, l.prefix) {
		envVar = l.prefix + envVar
	}
	l.mapping[envVar] = key
}

// Override is a setting set from the environment.
type Override struct {
	// Env is the variable the value came from.
	Env string
	// Key is the setting key.
	Key string
	// Value is the raw variable value.
	Value string
}

// Load returns the overrides of every mapped variable that is set, ordered by
// variable name. Empty values are overrides too.
func (l *EnvLoader) Load() []Override {
	names := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		names = append(names, env)
	}
	sort.Strings(names)

	var out []Override
	for _, env := range names {
		if val, ok := l.lookup(env); ok {
			out = append(out, Override{Env: env, Key: l.mapping[env], Value: val})
		}
	}
	return out
}

// ParseBool parses the boolean spellings accepted in environment variables.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

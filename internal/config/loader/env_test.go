package loader

import "testing"

func TestEnvLoaderLoad(t *testing.T) {
	env := map[string]string{
		"SWIPEKEY_LAYOUT":    "azerty",
		"SWIPEKEY_LOG_LEVEL": "",
		"SWIPEKEY_UNMAPPED":  "x",
		"OTHER_LAYOUT":       "y",
	}
	l := NewEnvLoader("SWIPEKEY_").WithLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	l.AddMapping("LAYOUT", "layout")
	l.AddMapping("SWIPEKEY_LOG_LEVEL", "log.level")
	l.AddMapping("SWIPE_DISTANCE", "input.swipe_distance")

	got := l.Load()
	want := []Override{
		{Env: "SWIPEKEY_LAYOUT", Key: "layout", Value: "azerty"},
		{Env: "SWIPEKEY_LOG_LEVEL", Key: "log.level", Value: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Load()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"YES", true, true},
		{" on ", true, true},
		{"1", true, true},
		{"false", false, true},
		{"no", false, true},
		{"Off", false, true},
		{"0", false, true},
		{"maybe", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		got, ok := ParseBool(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseBool(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

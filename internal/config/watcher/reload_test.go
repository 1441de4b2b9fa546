package watcher

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/swipekey/internal/config"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestReloaderAppliesValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("[input]\nswipe_distance = 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var applied *config.Config
	var buf bytes.Buffer
	r := NewReloader(path, func(c *config.Config) error {
		applied = c
		return nil
	}, testLogger(&buf))

	r.Handle(Event{Path: path, Op: OpWrite})
	if applied == nil {
		t.Fatalf("config not applied; log: %s", buf.String())
	}
	if applied.Input.SwipeDistance != 12 {
		t.Errorf("SwipeDistance = %v, want 12", applied.Input.SwipeDistance)
	}
	if !strings.Contains(buf.String(), "settings reloaded") {
		t.Errorf("log = %q, want a reload entry", buf.String())
	}
}

func TestReloaderRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("[input]\nswipe_distance = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	called := false
	var buf bytes.Buffer
	r := NewReloader(path, func(*config.Config) error {
		called = true
		return nil
	}, testLogger(&buf))

	r.Handle(Event{Path: path, Op: OpWrite})
	if called {
		t.Error("invalid config applied")
	}
	if !strings.Contains(buf.String(), "settings reload rejected") {
		t.Errorf("log = %q, want a rejection", buf.String())
	}
	if err := r.Reload(); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("Reload() = %v, want ErrValidationFailed", err)
	}
}

func TestReloaderApplyError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	applyErr := errors.New("layout missing")
	r := NewReloader(path, func(*config.Config) error { return applyErr }, nil)
	if err := r.Reload(); !errors.Is(err, applyErr) {
		t.Errorf("Reload() = %v, want %v", err, applyErr)
	}
}

func TestReloaderIgnoresRemove(t *testing.T) {
	called := false
	var buf bytes.Buffer
	r := NewReloader("settings.toml", func(*config.Config) error {
		called = true
		return nil
	}, testLogger(&buf))

	r.Handle(Event{Path: "settings.toml", Op: OpRemove})
	if called {
		t.Error("apply called for a removed file")
	}
}

func TestReloaderAttach(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	applied := make(chan *config.Config, 4)
	r := NewReloader(path, func(c *config.Config) error {
		applied <- c
		return nil
	}, nil)

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	if err := r.Attach(w); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	w.Start()

	if err := os.WriteFile(path, []byte("input:\n  key_repeat: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-applied:
		if c.Input.KeyRepeat {
			t.Error("KeyRepeat = true, want false")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("settings were not reloaded")
	}
}

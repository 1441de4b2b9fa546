package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestNew_WithOptions(t *testing.T) {
	w := newWatcher(t)
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = newWatcher(t, WithDebounce(50*time.Millisecond), WithDebounce(0))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.op)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = %v, %v, want %v, %v", tt.op, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.toml")
	b := filepath.Join(tmpDir, "b.toml")

	w := newWatcher(t)
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("second Watch(a) error = %v", err)
	}
	if got := w.dirs[tmpDir]; got != 2 {
		t.Errorf("dirs[%s] = %d, want 2", tmpDir, got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch(a) error = %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatalf("Unwatch(b) error = %v", err)
	}
	if len(w.dirs) != 0 || len(w.files) != 0 {
		t.Errorf("watch lists not empty: dirs=%v files=%v", w.dirs, w.files)
	}

	if err := w.Watch(filepath.Join(tmpDir, "missing", "c.toml")); err == nil {
		t.Error("Watch succeeded in a missing directory")
	}
}

func TestWatcher_WatchAfterStop(t *testing.T) {
	w := newWatcher(t)
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "a.toml")); err != ErrWatcherClosed {
		t.Errorf("Watch after Stop = %v, want ErrWatcherClosed", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestWatcher_Coalesce(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"create then write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"writes", []Operation{OpWrite, OpWrite, OpWrite}, OpWrite},
		{"write then remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"remove then create", []Operation{OpRemove, OpCreate}, OpCreate},
		{"rename then create", []Operation{OpRename, OpCreate, OpWrite}, OpCreate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWatcher(t, WithDebounce(50*time.Millisecond))
			var got []Event
			w.OnChange(func(e Event) { got = append(got, e) })

			for i, op := range tt.ops {
				w.queueEvent(Event{Path: "/x", Op: op, Time: base.Add(time.Duration(i) * time.Millisecond)})
			}
			last := base.Add(time.Duration(len(tt.ops)-1) * time.Millisecond)

			w.processPendingEvents(last.Add(10 * time.Millisecond))
			if len(got) != 0 {
				t.Fatalf("events delivered before the debounce: %v", got)
			}
			w.processPendingEvents(last.Add(50 * time.Millisecond))
			if len(got) != 1 {
				t.Fatalf("got %d events, want 1", len(got))
			}
			if got[0].Op != tt.want {
				t.Errorf("Op = %v, want %v", got[0].Op, tt.want)
			}
			if !got[0].Time.Equal(last) {
				t.Errorf("Time = %v, want %v", got[0].Time, last)
			}
		})
	}
}

func TestWatcher_HandlerPanic(t *testing.T) {
	w := newWatcher(t)
	var called atomic.Int32
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { called.Add(1) })

	w.emitEvent(Event{Path: "/x", Op: OpWrite})
	if called.Load() != 1 {
		t.Error("handler after a panicking handler was not called")
	}
}

func TestWatcher_DetectsFileModification(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.toml")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(20*time.Millisecond))

	var mu sync.Mutex
	var events []Event
	w.OnChange(func(event Event) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	})
	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}
	// Other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte("modified"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) == 0 {
		t.Fatal("did not receive file change event")
	}
	for _, e := range events {
		if e.Path != tmpFile {
			t.Errorf("event.Path = %q, want %q", e.Path, tmpFile)
		}
	}
	if events[0].Op != OpWrite {
		t.Errorf("event.Op = %v, want OpWrite", events[0].Op)
	}
}

func TestWatcher_DetectsFileCreation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "new.toml")

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	got := make(chan Event, 4)
	w.OnChange(func(event Event) { got <- event })
	if err := w.Watch(tmpFile); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := os.WriteFile(tmpFile, []byte("created"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-got:
		if e.Op != OpCreate {
			t.Errorf("event.Op = %v, want OpCreate", e.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive file creation event")
	}
}

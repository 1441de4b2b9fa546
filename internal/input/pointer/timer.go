package pointer

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs deferred key repeats. Schedule replaces any pending
// deadline for the same token. When a deadline passes, the owner of the
// Scheduler must call Pointers.Fire with the token, from the goroutine
// that drives Pointers.
type Scheduler interface {
	Schedule(token uint64, after time.Duration)
	Cancel(token uint64)
}

// ChannelTimer is a Scheduler backed by time.AfterFunc. Due tokens are
// sent on C.
type ChannelTimer struct {
	mu     sync.Mutex
	timers map[uint64]*time.Timer
	gen    map[uint64]uint64
	next   uint64
	c      chan uint64
	done   chan struct{}
	once   sync.Once
}

// NewChannelTimer returns a started ChannelTimer.
func NewChannelTimer() *ChannelTimer {
	return &ChannelTimer{
		timers: make(map[uint64]*time.Timer),
		gen:    make(map[uint64]uint64),
		c:      make(chan uint64, 16),
		done:   make(chan struct{}),
	}
}

// C returns the channel receiving due tokens.
func (t *ChannelTimer) C() <-chan uint64 {
	return t.c
}

// Schedule implements Scheduler.
func (t *ChannelTimer) Schedule(token uint64, after time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old, ok := t.timers[token]; ok {
		old.Stop()
	}
	t.next++
	g := t.next
	t.gen[token] = g
	t.timers[token] = time.AfterFunc(after, func() {
		t.mu.Lock()
		current := t.gen[token] == g
		if current {
			delete(t.timers, token)
			delete(t.gen, token)
		}
		t.mu.Unlock()
		if !current {
			return
		}
		select {
		case t.c <- token:
		case <-t.done:
		}
	})
}

// Cancel implements Scheduler. A token already sent on C is not taken
// back; Pointers ignores tokens it no longer owns.
func (t *ChannelTimer) Cancel(token uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tm, ok := t.timers[token]; ok {
		tm.Stop()
		delete(t.timers, token)
		delete(t.gen, token)
	}
}

// Stop cancels every pending deadline and releases blocked senders.
func (t *ChannelTimer) Stop() {
	t.once.Do(func() {
		close(t.done)
	})
	t.mu.Lock()
	defer t.mu.Unlock()
	for token, tm := range t.timers {
		tm.Stop()
		delete(t.timers, token)
		delete(t.gen, token)
	}
}

// ManualTimer is a Scheduler driven by virtual time, for tests and
// deterministic replays.
type ManualTimer struct {
	now     time.Duration
	pending map[uint64]time.Duration
}

// NewManualTimer returns a ManualTimer at time zero.
func NewManualTimer() *ManualTimer {
	return &ManualTimer{pending: make(map[uint64]time.Duration)}
}

// Schedule implements Scheduler.
func (m *ManualTimer) Schedule(token uint64, after time.Duration) {
	m.pending[token] = m.now + after
}

// Cancel implements Scheduler.
func (m *ManualTimer) Cancel(token uint64) {
	delete(m.pending, token)
}

// Now returns the virtual time.
func (m *ManualTimer) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled tokens.
func (m *ManualTimer) Pending() int {
	return len(m.pending)
}

// Deadline returns when token is due.
func (m *ManualTimer) Deadline(token uint64) (time.Duration, bool) {
	d, ok := m.pending[token]
	return d, ok
}

// Advance moves the clock forward by d. Each token falling due is removed
// and passed to fire, in deadline order; tokens rescheduled by fire run
// again if they fall due before the end of the window.
func (m *ManualTimer) Advance(d time.Duration, fire func(token uint64)) {
	end := m.now + d
	for {
		token, at, ok := m.earliest()
		if !ok || at > end {
			break
		}
		delete(m.pending, token)
		m.now = at
		fire(token)
	}
	m.now = end
}

func (m *ManualTimer) earliest() (uint64, time.Duration, bool) {
	if len(m.pending) == 0 {
		return 0, 0, false
	}
	tokens := make([]uint64, 0, len(m.pending))
	for t := range m.pending {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		a, b := m.pending[tokens[i]], m.pending[tokens[j]]
		if a != b {
			return a < b
		}
		return tokens[i] < tokens[j]
	})
	return tokens[0], m.pending[tokens[0]], true
}

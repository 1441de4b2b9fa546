package keyboard

import (
	"sync/atomic"
	"time"
)

// Metrics counts the activity of a keyboard.
type Metrics struct {
	touchesTotal    atomic.Uint64
	keysDelivered   atomic.Uint64
	repeatsTotal    atomic.Uint64
	scriptOverrides atomic.Uint64
	scriptErrors    atomic.Uint64
	reloadsTotal    atomic.Uint64

	peakTouchLatency atomic.Int64

	startTime time.Time
}

func newMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// recordTouch records a touch with its processing time.
func (m *Metrics) recordTouch(latency time.Duration) {
	m.touchesTotal.Add(1)

	ns := latency.Nanoseconds()
	for {
		current := m.peakTouchLatency.Load()
		if ns <= current {
			break
		}
		if m.peakTouchLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	TouchesTotal     uint64
	KeysDelivered    uint64
	RepeatsTotal     uint64
	ScriptOverrides  uint64
	ScriptErrors     uint64
	ReloadsTotal     uint64
	PeakTouchLatency time.Duration
	Uptime           time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TouchesTotal:     m.touchesTotal.Load(),
		KeysDelivered:    m.keysDelivered.Load(),
		RepeatsTotal:     m.repeatsTotal.Load(),
		ScriptOverrides:  m.scriptOverrides.Load(),
		ScriptErrors:     m.scriptErrors.Load(),
		ReloadsTotal:     m.reloadsTotal.Load(),
		PeakTouchLatency: time.Duration(m.peakTouchLatency.Load()),
		Uptime:           time.Since(m.startTime),
	}
}

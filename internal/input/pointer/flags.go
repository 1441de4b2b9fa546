package pointer

import (
	"strings"

	"github.com/dshills/swipekey/internal/input/key"
)

// Flags describe the state of a pointer.
type Flags uint16

const (
	// FlagLatchable is set while a pressed key will latch on release.
	FlagLatchable Flags = 1 << iota

	// FlagLockable allows a long press to lock the key.
	FlagLockable

	// FlagDoubleTapLock makes a second release lock the key instead of
	// unlatching it.
	FlagDoubleTapLock

	// FlagClearLatched makes a latchable key clear the other latched keys
	// when it latches.
	FlagClearLatched

	// FlagLatched is set on keys that stay active without a finger.
	FlagLatched

	// FlagLocked is set on latched keys that are not consumed by other key
	// presses.
	FlagLocked

	// FlagFake marks pointers created by SetFakePointerState.
	FlagFake
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagLatchable, "latchable"},
	{FlagLockable, "lockable"},
	{FlagDoubleTapLock, "double_tap_lock"},
	{FlagClearLatched, "clear_latched"},
	{FlagLatched, "latched"},
	{FlagLocked, "locked"},
	{FlagFake, "fake"},
}

// Has reports whether all of the bits in o are set.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// String returns the set flags joined by "|".
func (f Flags) String() string {
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// flagsOf returns the initial flags of a pointer pressing v.
func flagsOf(v key.Value) Flags {
	var f Flags
	if v.HasFlags(key.FlagLatch) {
		f |= FlagLatchable
		if v.HasFlags(key.FlagSpecial) {
			f |= FlagLockable
		} else {
			f |= FlagClearLatched
		}
	}
	if v.HasFlags(key.FlagDoubleTapLock) {
		f |= FlagDoubleTapLock
	}
	return f
}

// Package pointer tracks the fingers on a soft keyboard and turns their
// movements into key presses.
//
// Pointers owns one record per touch contact and one per latched or
// locked key. It resolves the value under each finger through the
// Handler's ModifyKey, follows swipes across the eight octants of a key,
// recognizes circle gestures, and schedules long presses and key repeat
// through a Scheduler.
//
// # Latching and locking
//
// Keys whose value carries key.FlagLatch are not delivered when released.
// They stay active with no finger on them and contribute to the modifiers
// of the next key; that key's release consumes them. Releasing the same
// latched key again unlatches it, or locks it when its value carries
// key.FlagDoubleTapLock. A long press on a special latchable key locks it
// directly.
//
// # Threading
//
// Pointers is not synchronized. Touch events and Fire must be called from
// a single goroutine, typically an event loop that also receives the
// tokens of a ChannelTimer.
package pointer

package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/swipekey/internal/input/key"
)

// buffer is the text edited by the demo. It implements keyboard.Sink.
type buffer struct {
	mu     sync.Mutex
	text   []string // grapheme clusters
	cursor int
	status string
	notify func()
}

func newBuffer(notify func()) *buffer {
	if notify == nil {
		notify = func() {}
	}
	return &buffer{notify: notify}
}

func (b *buffer) CommitText(text string) {
	b.mu.Lock()
	g := uniseg.NewGraphemes(text)
	var ins []string
	for g.Next() {
		ins = append(ins, g.Str())
	}
	b.text = append(b.text[:b.cursor], append(ins, b.text[b.cursor:]...)...)
	b.cursor += len(ins)
	b.mu.Unlock()
	b.notify()
}

func (b *buffer) SendKey(code, meta int) {
	b.mu.Lock()
	word := meta&key.MetaCtrlOn != 0
	switch code {
	case key.KeycodeDel:
		from := b.cursor - 1
		if word {
			from = b.wordStart()
		}
		if from >= 0 {
			b.text = append(b.text[:from], b.text[b.cursor:]...)
			b.cursor = from
		}
	case key.KeycodeForwardDel:
		if b.cursor < len(b.text) {
			b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
		}
	case key.KeycodeDpadLeft:
		b.cursor = max(0, b.cursor-1)
	case key.KeycodeDpadRight:
		b.cursor = min(len(b.text), b.cursor+1)
	case key.KeycodeMoveHome:
		b.cursor = 0
	case key.KeycodeMoveEnd:
		b.cursor = len(b.text)
	case key.KeycodeEnter:
		b.text = append(b.text[:b.cursor], append([]string{"\n"}, b.text[b.cursor:]...)...)
		b.cursor++
	case key.KeycodeTab:
		b.text = append(b.text[:b.cursor], append([]string{"\t"}, b.text[b.cursor:]...)...)
		b.cursor++
	default:
		b.status = fmt.Sprintf("key %d meta %#x", code, meta)
	}
	b.mu.Unlock()
	b.notify()
}

// wordStart returns the start of the word before the cursor.
func (b *buffer) wordStart() int {
	i := b.cursor
	for i > 0 && strings.TrimSpace(b.text[i-1]) == "" {
		i--
	}
	for i > 0 && strings.TrimSpace(b.text[i-1]) != "" {
		i--
	}
	return i
}

func (b *buffer) HandleEvent(ev key.Event) {
	b.setStatus("event " + ev.String())
}

func (b *buffer) PerformEditing(e key.Editing) {
	b.setStatus("editing " + e.String())
}

func (b *buffer) StateChanged() {
	b.notify()
}

func (b *buffer) setStatus(s string) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
	b.notify()
}

// snapshot returns the text, with the cursor as a grapheme index, and the
// status line.
func (b *buffer) snapshot() (text []string, cursor int, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.text...), b.cursor, b.status
}

func (b *buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.text, "")
}

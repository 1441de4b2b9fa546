package main

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/swipekey/internal/input/keyboard"
	"github.com/dshills/swipekey/internal/input/layout"
	"github.com/dshills/swipekey/internal/input/mouse"
	"github.com/dshills/swipekey/internal/input/pointer"
)

// rowCells is the height of a keyboard row in cells.
const rowCells = 3

var (
	styleText   = tcell.StyleDefault
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleKey    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleKeyAlt = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	styleCorner = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type ui struct {
	screen tcell.Screen
	kb     *keyboard.Keyboard
	buf    *buffer
	tr     *mouse.Translator
	cell   mouse.Config
	top    int
}

func newUI(screen tcell.Screen, kb *keyboard.Keyboard, buf *buffer, cell mouse.Config) *ui {
	u := &ui{screen: screen, kb: kb, buf: buf, tr: mouse.NewTranslator(cell), cell: cell}
	u.resize()
	return u
}

// resize places the keyboard at the bottom of the screen.
func (u *ui) resize() {
	w, h := u.screen.Size()
	rows := int(math.Ceil(u.kb.Geometry().Layout().Height() * rowCells))
	u.top = max(0, h-rows)
	u.tr.SetOrigin(mouse.Position{X: 0, Y: u.top})
	u.kb.Resize(float64(w)*u.cell.CellWidth, float64(rows)*u.cell.CellHeight)
}

func (u *ui) loop(ctx context.Context, touches chan<- keyboard.Touch) {
	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ctx.Err() != nil {
			return
		}
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			u.screen.Sync()
			for _, t := range u.tr.Cancel() {
				touches <- t
			}
			u.resize()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			continue
		case *tcell.EventMouse:
			x, y := ev.Position()
			for _, t := range u.tr.Translate(mouse.Event{
				Position: mouse.Position{X: x, Y: y},
				Buttons:  buttons(ev.Buttons()),
			}) {
				touches <- t
			}
			continue
		}
		u.draw()
	}
}

func buttons(m tcell.ButtonMask) mouse.ButtonMask {
	var out []mouse.Button
	if m&tcell.ButtonPrimary != 0 {
		out = append(out, mouse.ButtonLeft)
	}
	if m&tcell.ButtonMiddle != 0 {
		out = append(out, mouse.ButtonMiddle)
	}
	if m&tcell.ButtonSecondary != 0 {
		out = append(out, mouse.ButtonRight)
	}
	if m&tcell.WheelUp != 0 {
		out = append(out, mouse.ButtonScrollUp)
	}
	if m&tcell.WheelDown != 0 {
		out = append(out, mouse.ButtonScrollDown)
	}
	return mouse.Buttons(out...)
}

func (u *ui) draw() {
	u.screen.Clear()
	u.drawText()
	u.drawKeyboard()
	u.screen.Show()
}

func (u *ui) drawText() {
	text, cursor, status := u.buf.snapshot()
	w, _ := u.screen.Size()
	if u.top > 0 {
		drawString(u.screen, 0, u.top-1, status, styleStatus)
	}

	x, y := 0, 0
	cx, cy := 0, 0
	for i, g := range text {
		if i == cursor {
			cx, cy = x, y
		}
		switch g {
		case "\n":
			x, y = 0, y+1
			continue
		case "\t":
			x += 4 - x%4
			continue
		}
		width := uniseg.StringWidth(g)
		if x+width > w {
			x, y = 0, y+1
		}
		if y < u.top-1 {
			drawString(u.screen, x, y, g, styleText)
		}
		x += width
	}
	if cursor == len(text) {
		cx, cy = x, y
	}
	if cy < u.top-1 {
		u.screen.ShowCursor(cx, cy)
	} else {
		u.screen.HideCursor()
	}
}

func (u *ui) drawKeyboard() {
	g := u.kb.Geometry()
	cw, ch := u.cell.CellWidth, u.cell.CellHeight
	for ri, row := range g.Layout().Rows {
		for ki, k := range row.Keys {
			r, ok := g.Bounds(k)
			if !ok {
				continue
			}
			x0, x1 := int(r.X/cw), int((r.X+r.W)/cw)
			y0, y1 := u.top+int(r.Y/ch), u.top+int((r.Y+r.H)/ch)
			style := styleKey
			if (ri+ki)%2 == 1 {
				style = styleKeyAlt
			}
			if u.kb.IsKeyDown(k) {
				style = style.Reverse(true)
			}
			if flags, ok := u.kb.KeyState(k.Value(layout.Center)); ok && flags.Has(pointer.FlagLocked) {
				style = style.Bold(true).Underline(true)
			}
			u.drawKey(k, x0, y0, x1, y1, style)
		}
	}
}

func (u *ui) drawKey(k *layout.Key, x0, y0, x1, y1 int, style tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			u.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if x1-x0 < 3 || y1-y0 < 1 {
		return
	}
	_, bg, _ := style.Decompose()
	corner := styleCorner.Background(bg)
	midX, midY := (x0+x1)/2, (y0+y1)/2

	put := func(d layout.Direction, x, y int, s tcell.Style) {
		sym := k.Value(d).Symbol()
		if sym == "" {
			return
		}
		switch {
		case x < 0:
			x = -x - uniseg.StringWidth(sym)
		case x == midX:
			x -= uniseg.StringWidth(sym) / 2
		}
		drawString(u.screen, x, y, sym, s)
	}
	put(layout.Center, midX, midY, style)
	put(layout.NorthWest, x0, y0, corner)
	put(layout.North, midX, y0, corner)
	put(layout.NorthEast, -x1, y0, corner)
	put(layout.West, x0, midY, corner)
	put(layout.East, -x1, midY, corner)
	put(layout.SouthWest, x0, y1-1, corner)
	put(layout.South, midX, y1-1, corner)
	put(layout.SouthEast, -x1, y1-1, corner)
}

// drawString draws s one grapheme cluster per cell run and returns the
// column after it.
func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	g := uniseg.NewGraphemes(str)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += max(1, uniseg.StringWidth(g.Str()))
	}
	return x
}

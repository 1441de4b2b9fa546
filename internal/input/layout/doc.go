// Package layout describes the physical keys of a soft keyboard and where
// they are on screen.
//
// A Key holds up to nine values: one at its center and one per compass
// octant, reached by swiping from the center. Keys are arranged in rows
// to form a Layout, and a Geometry places a Layout on a pixel area so that
// touch positions can be mapped back to keys.
//
// # Key definitions
//
// Keys are written as whitespace separated fields. A field of the form
// "dir=def" places def at a direction (c, n, ne, e, se, s, sw, w, nw);
// "anticircle=def" sets the value produced by an anticlockwise circle;
// "width=1.5" and "shift=0.5" set the size and left offset in key units.
// Any other field is the center value. Each def uses the syntax accepted
// by key.Parse. Single quotes protect spaces, and outside quotes \' and
// "\ " stand for a quote and a space:
//
//	q ne=1 se=esc
//	e ne=3 sw=accent_aigu se=#
//	space width=4 w=cursor_left e=cursor_right
//	:str symbol='Hi':'hello world' ne=:str:'bye'
package layout

package layout

const qwertyRows = `
q ne=1 se=esc | w nw=~ ne=2 se=@ | e nw=! ne=3 se=# sw=accent_aigu | r ne=4 se=$ | t ne=5 se=% | y ne=6 se=^ | u ne=7 se=& sw=accent_trema | i ne=8 se=* sw=accent_circonflexe | o ne=9 se=( | p ne=0 se=)
a shift=0.5 ne=tab sw=accent_grave | s ne=ß | d | f | g ne=- se=_ | h ne== se=+ | j ne=accent_caron | k ne=[ se=] | l ne={ se=}
shift width=1.5 s=capslock | z | x ne=compose | c ne=< se=. sw=accent_cedille | v ne=> se=, | b ne=? se=; | n ne=accent_tilde se=: | m ne=" se=\' | backspace width=1.5 ne=delete
ctrl width=1.5 nw=meta sw=switch_numeric | fn width=1.1 nw=alt ne=change_method sw=switch_emoji se=config | space width=4.8 w=cursor_left e=cursor_right n=cursor_up s=cursor_down anticircle=selection_mode | / ne=\| se=\\ | enter width=1.6 nw=up sw=left ne=right se=down
`

// QWERTY returns a US QWERTY layout with symbols, accents and navigation on
// the corners of the keys.
func QWERTY() *Layout {
	l, err := ParseRows("qwerty", qwertyRows)
	if err != nil {
		panic(err)
	}
	return l
}

// Package mouse turns mouse input into the touch stream of a keyboard.
//
// Each held button acts as one finger: pressing a button starts a touch,
// dragging moves it and releasing the button lifts it. Holding two buttons
// at once gives two concurrent touches. Positions are terminal cells and
// are converted to pixels at the center of the cell:
//
//	tr := mouse.NewTranslator(mouse.DefaultConfig())
//	tr.SetOrigin(mouse.Position{X: 0, Y: top})
//	for _, t := range tr.Translate(ev) {
//		touches <- t
//	}
//
// Translator is safe for concurrent use.
package mouse

package input

import "github.com/gdamore/tcell/v2"

// FromTcell maps a tcell key event to a Key
func FromTcell(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		return Parse(KeyInput{Char: ev.Rune()})
	}
	return KeyUnknown
}

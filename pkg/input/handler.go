package input

import "github.com/trytobebee/gridsnake/pkg/game"

// Key is a recognised input, independent of the device that produced it
type Key int

const (
	KeyUnknown Key = iota
	KeyStart
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyStart:
		return "start"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Direction returns the heading for a directional key
func (k Key) Direction() (game.Direction, bool) {
	switch k {
	case KeyUp:
		return game.Up, true
	case KeyDown:
		return game.Down, true
	case KeyLeft:
		return game.Left, true
	case KeyRight:
		return game.Right, true
	}
	return game.None, false
}

// Action is what the driver has to do after a key was handled
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionQuit
)

// Handle applies a key to the state. Directions are queued on the state
// directly; starting and quitting are returned for the driver to carry out.
func Handle(s *game.State, k Key) Action {
	switch k {
	case KeyQuit:
		return ActionQuit
	case KeyStart:
		if s.Status == game.NotStarted || s.Status == game.GameOver {
			return ActionStart
		}
		return ActionNone
	}

	if dir, ok := k.Direction(); ok && s.Status == game.Playing {
		s.SetPending(dir)
	}
	return ActionNone
}

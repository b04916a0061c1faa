package input

import (
	"sync"

	"github.com/eiannone/keyboard"
)

// KeyboardHandler reads the terminal keyboard and forwards recognised keys
type KeyboardHandler struct {
	inputChan chan Key
	done      chan struct{}
	stopOnce  sync.Once
	closeTerm func() error
}

// KeyInput represents a raw keyboard event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan Key),
		done:      make(chan struct{}),
		closeTerm: keyboard.Close,
	}
}

// Start puts the terminal in raw mode and begins listening for keys
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		defer close(h.inputChan)
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			k := Parse(KeyInput{Char: char, Key: key})
			if k == KeyUnknown {
				continue
			}
			select {
			case h.inputChan <- k:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop restores the terminal. Calling it again does nothing.
func (h *KeyboardHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.closeTerm()
	})
}

// Keys returns the channel of recognised keys. It is closed when the
// keyboard can no longer be read.
func (h *KeyboardHandler) Keys() <-chan Key {
	return h.inputChan
}

// Parse maps a raw keyboard event to a Key
func Parse(input KeyInput) Key {
	// Handle special keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return KeyUp
	case keyboard.KeyArrowDown:
		return KeyDown
	case keyboard.KeyArrowLeft:
		return KeyLeft
	case keyboard.KeyArrowRight:
		return KeyRight
	case keyboard.KeySpace:
		return KeyStart
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return KeyQuit
	}

	// Handle WASD keys
	switch input.Char {
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case ' ':
		return KeyStart
	case 'q', 'Q':
		return KeyQuit
	}

	return KeyUnknown
}

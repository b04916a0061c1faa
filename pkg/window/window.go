package window

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

var textColor = color.RGBA{0x20, 0x20, 0x20, 0xff}

// Window presents a canvas in an ebiten window and forwards key presses.
// The game loop draws on the canvas and updates the HUD from its own
// goroutine; ebiten reads both from the main thread.
type Window struct {
	canvas        *renderer.Canvas
	width, height int
	keys          chan<- input.Key
	keyBuf        []ebiten.Key

	board  *ebiten.Image
	pix    []byte
	closed atomic.Bool

	mu  sync.Mutex
	hud hud
}

// hud holds the score fields and the message lines under the board
type hud struct {
	score, highScore int
	messages         []string
}

func (h hud) lines() []string {
	lines := []string{fmt.Sprintf("Score: %d   High Score: %d", h.score, h.highScore)}
	return append(lines, h.messages...)
}

// New creates a window for canvas. Recognised keys are sent on keys
// without blocking, so keys should be buffered.
func New(canvas *renderer.Canvas, keys chan<- input.Key) *Window {
	w, h := canvas.Size()
	return &Window{
		canvas: canvas,
		width:  w,
		height: h,
		keys:   keys,
		pix:    make([]byte, 4*w*h),
	}
}

// ShowStartPrompt shows the start message in the HUD
func (w *Window) ShowStartPrompt() {
	w.mu.Lock()
	w.hud.messages = []string{config.MsgStart}
	w.mu.Unlock()
}

// SetScores updates the HUD score line
func (w *Window) SetScores(score, highScore int) {
	w.mu.Lock()
	w.hud.score, w.hud.highScore = score, highScore
	w.mu.Unlock()
}

// ShowGameOver shows the game-over notice in the HUD
func (w *Window) ShowGameOver(o game.Outcome) {
	lines := renderer.GameOverLines(o)
	w.mu.Lock()
	w.hud.messages = lines
	w.mu.Unlock()
}

// ClearMessage removes the HUD message
func (w *Window) ClearMessage() {
	w.mu.Lock()
	w.hud.messages = nil
	w.mu.Unlock()
}

// Close asks the window to shut down on its next update
func (w *Window) Close() {
	w.closed.Store(true)
}

// Update forwards the keys pressed since the last frame
func (w *Window) Update() error {
	if w.closed.Load() {
		return ebiten.Termination
	}
	w.keyBuf = inpututil.AppendJustPressedKeys(w.keyBuf[:0])
	for _, k := range w.keyBuf {
		key := MapKey(k)
		if key == input.KeyUnknown {
			continue
		}
		select {
		case w.keys <- key:
		default:
		}
		if key == input.KeyQuit {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw copies the last published canvas frame and the HUD to the screen
func (w *Window) Draw(screen *ebiten.Image) {
	if w.board == nil {
		w.board = ebiten.NewImage(w.width, w.height)
	}
	w.canvas.CopyPixels(w.pix)
	w.board.WritePixels(w.pix)

	screen.Fill(color.White)
	screen.DrawImage(w.board, nil)

	w.mu.Lock()
	lines := w.hud.lines()
	w.mu.Unlock()
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, 8, w.height+18+i*16, textColor)
	}
}

// Layout returns the fixed board size plus the HUD strip
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height + config.WindowHUD
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width, w.height+config.WindowHUD)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// MapKey maps an ebiten key to a Key
func MapKey(k ebiten.Key) input.Key {
	switch k {
	case ebiten.KeyArrowUp, ebiten.KeyW:
		return input.KeyUp
	case ebiten.KeyArrowDown, ebiten.KeyS:
		return input.KeyDown
	case ebiten.KeyArrowLeft, ebiten.KeyA:
		return input.KeyLeft
	case ebiten.KeyArrowRight, ebiten.KeyD:
		return input.KeyRight
	case ebiten.KeySpace:
		return input.KeyStart
	case ebiten.KeyEscape, ebiten.KeyQ:
		return input.KeyQuit
	}
	return input.KeyUnknown
}

package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// TerminalRenderer is a character-cell surface that writes whole frames
// with ANSI escape codes. It also shows the score and game messages.
type TerminalRenderer struct {
	out    io.Writer
	board  [][]color.RGBA
	filled [][]bool
	buffer strings.Builder

	score, highScore int
	messages         []string
}

// NewTerminalRenderer creates a terminal surface of width x height cells
func NewTerminalRenderer(out io.Writer, width, height int) *TerminalRenderer {
	// Pre-allocate board to reduce GC pressure
	board := make([][]color.RGBA, height)
	filled := make([][]bool, height)
	for i := range board {
		board[i] = make([]color.RGBA, width)
		filled[i] = make([]bool, width)
	}

	return &TerminalRenderer{
		out:    out,
		board:  board,
		filled: filled,
	}
}

// Size returns the surface size in character cells
func (r *TerminalRenderer) Size() (int, int) {
	if len(r.board) == 0 {
		return 0, 0
	}
	return len(r.board[0]), len(r.board)
}

// Clear marks every cell as empty
func (r *TerminalRenderer) Clear() {
	for y := range r.filled {
		for x := range r.filled[y] {
			r.filled[y][x] = false
		}
	}
}

// FillRect paints the cells inside rect
func (r *TerminalRenderer) FillRect(rect image.Rectangle, c color.Color) {
	w, h := r.Size()
	rect = rect.Intersect(image.Rect(0, 0, w, h))
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.board[y][x] = rgba
			r.filled[y][x] = true
		}
	}
}

// Filled reports whether a cell was painted in the current frame
func (r *TerminalRenderer) Filled(x, y int) (color.RGBA, bool) {
	return r.board[y][x], r.filled[y][x]
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// ShowStartPrompt shows the start message under the board
func (r *TerminalRenderer) ShowStartPrompt() {
	r.messages = []string{config.MsgStart}
}

// SetScores updates the score line
func (r *TerminalRenderer) SetScores(score, highScore int) {
	r.score, r.highScore = score, highScore
}

// ShowGameOver shows the game-over notice
func (r *TerminalRenderer) ShowGameOver(o game.Outcome) {
	r.messages = GameOverLines(o)
}

// ClearMessage removes the message under the board
func (r *TerminalRenderer) ClearMessage() {
	r.messages = nil
}

// Flush writes the current frame. The terminal is in raw mode while the
// keyboard is open, so lines end with CRLF.
func (r *TerminalRenderer) Flush() error {
	r.buffer.Reset()

	// Clear screen and move home
	r.buffer.WriteString("\033[H\033[2J\033[3J")
	r.buffer.WriteString("\r\n  SNAKE\r\n")
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  High Score: %d\r\n\r\n", r.score, r.highScore))

	w, _ := r.Size()
	border := "  +" + strings.Repeat("-", w) + "+\r\n"
	r.buffer.WriteString(border)
	for y, row := range r.board {
		r.buffer.WriteString("  |")
		for x, c := range row {
			if r.filled[y][x] {
				fmt.Fprintf(&r.buffer, "\033[48;2;%d;%d;%dm \033[0m", c.R, c.G, c.B)
			} else {
				r.buffer.WriteByte(' ')
			}
		}
		r.buffer.WriteString("|\r\n")
	}
	r.buffer.WriteString(border)

	r.buffer.WriteString("\r\n")
	for _, msg := range r.messages {
		r.buffer.WriteString("  " + msg + "\r\n")
	}
	r.buffer.WriteString("\r\n  " + config.MsgKeyHelp + "\r\n")

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

// GameOverLines returns the game-over notice, one message per line
func GameOverLines(o game.Outcome) []string {
	lines := []string{config.MsgGameOver}
	if o.NewHighScore {
		lines = append(lines, config.MsgNewHighScore)
	}
	return append(lines, config.MsgRestart)
}

package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Screen layout: two header rows, the bordered board, then messages
const (
	tcellHeaderRows = 2
	tcellBorder     = 1
)

// TcellRenderer draws on a tcell screen. Each surface unit is one
// character cell filled with a background color.
type TcellRenderer struct {
	screen        tcell.Screen
	width, height int
	base          tcell.Style

	score, highScore int
	messages         []string
}

// NewTcellRenderer wraps an initialised screen
func NewTcellRenderer(screen tcell.Screen, width, height int) *TcellRenderer {
	return &TcellRenderer{
		screen: screen,
		width:  width,
		height: height,
		base:   tcell.StyleDefault,
	}
}

// Size returns the board size in screen cells
func (r *TcellRenderer) Size() (int, int) {
	return r.width, r.height
}

// origin is the screen position of surface unit (0, 0)
func (r *TcellRenderer) origin() (int, int) {
	return tcellBorder, tcellHeaderRows + tcellBorder
}

// Clear wipes the screen and draws the board frame
func (r *TcellRenderer) Clear() {
	r.screen.Clear()
	ox, oy := r.origin()

	// Board frame
	for x := -1; x <= r.width; x++ {
		r.screen.SetContent(ox+x, oy-1, '-', nil, r.base)
		r.screen.SetContent(ox+x, oy+r.height, '-', nil, r.base)
	}
	for y := 0; y < r.height; y++ {
		r.screen.SetContent(ox-1, oy+y, '|', nil, r.base)
		r.screen.SetContent(ox+r.width, oy+y, '|', nil, r.base)
	}
}

// FillRect paints the cells inside rect with a background color
func (r *TcellRenderer) FillRect(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(image.Rect(0, 0, r.width, r.height))
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	style := r.base.Background(tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B)))
	ox, oy := r.origin()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.screen.SetContent(ox+x, oy+y, ' ', nil, style)
		}
	}
}

// CellStyle returns the style of a surface unit as drawn on the screen
func (r *TcellRenderer) CellStyle(x, y int) tcell.Style {
	ox, oy := r.origin()
	_, _, style, _ := r.screen.GetContent(ox+x, oy+y)
	return style
}

// ShowStartPrompt shows the start message under the board
func (r *TcellRenderer) ShowStartPrompt() {
	r.messages = []string{config.MsgStart}
}

// SetScores updates the score row
func (r *TcellRenderer) SetScores(score, highScore int) {
	r.score, r.highScore = score, highScore
}

// ShowGameOver shows the game-over notice
func (r *TcellRenderer) ShowGameOver(o game.Outcome) {
	r.messages = GameOverLines(o)
}

// ClearMessage removes the message under the board
func (r *TcellRenderer) ClearMessage() {
	r.messages = nil
}

// Flush draws the text rows and shows the frame
func (r *TcellRenderer) Flush() error {
	r.text(0, 0, "SNAKE")
	r.text(0, 1, fmt.Sprintf("Score: %d  |  High Score: %d", r.score, r.highScore))

	_, oy := r.origin()
	row := oy + r.height + tcellBorder + 1
	for _, msg := range r.messages {
		r.text(0, row, msg)
		row++
	}
	r.text(0, row+1, config.MsgKeyHelp)

	r.screen.Show()
	return nil
}

func (r *TcellRenderer) text(x, y int, s string) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, r.base)
		x++
	}
}

package renderer

import (
	"image"
	"image/color"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Surface is a rectangular drawing target of fixed size
type Surface interface {
	Size() (w, h int)
	Clear()
	FillRect(r image.Rectangle, c color.Color)
}

// Flusher is implemented by surfaces that present a frame in one batch
type Flusher interface {
	Flush() error
}

// Palette holds the fill colors used for a frame
type Palette struct {
	Background color.RGBA
	Snake      color.RGBA
	Food       color.RGBA
	Crash      color.RGBA
}

// DefaultPalette returns the standard colors
func DefaultPalette() Palette {
	return Palette{
		Background: hexColor(config.ColorBackground),
		Snake:      hexColor(config.ColorSnake),
		Food:       hexColor(config.ColorFood),
		Crash:      hexColor(config.ColorCrash),
	}
}

func hexColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Renderer paints a game state onto a surface. It keeps no game state.
type Renderer struct {
	Palette Palette
	Padding int
}

// New creates a renderer with the default palette and cell padding
func New() *Renderer {
	return &Renderer{
		Palette: DefaultPalette(),
		Padding: config.CellPadding,
	}
}

// Render clears dst and draws the snake and the food
func (r *Renderer) Render(dst Surface, s *game.State) {
	var food, crash *game.Point
	if s.FoodPlaced {
		food = &s.Food
	}
	// Draw crash point if game over
	if s.Status == game.GameOver && s.CrashPoint != nil && s.InBounds(*s.CrashPoint) {
		crash = s.CrashPoint
	}
	r.draw(dst, s.GridSize, s.Snake, food, crash)
}

// RenderSnapshot draws a recorded frame the same way Render draws a state
func (r *Renderer) RenderSnapshot(dst Surface, snap game.Snapshot) {
	if snap.GridSize <= 0 {
		dst.Clear()
		return
	}
	var crash *game.Point
	if snap.Status == game.GameOver.String() && snap.CrashPoint != nil {
		p := *snap.CrashPoint
		if p.X >= 0 && p.Y >= 0 && p.X < snap.GridSize && p.Y < snap.GridSize {
			crash = &p
		}
	}
	r.draw(dst, snap.GridSize, snap.Snake, snap.Food, crash)
}

func (r *Renderer) draw(dst Surface, gridSize int, snake []game.Point, food, crash *game.Point) {
	dst.Clear()

	w, h := dst.Size()
	cellW, cellH := w/gridSize, h/gridSize

	for _, seg := range snake {
		dst.FillRect(r.cellRect(seg, cellW, cellH), r.Palette.Snake)
	}
	if food != nil {
		dst.FillRect(r.cellRect(*food, cellW, cellH), r.Palette.Food)
	}
	if crash != nil {
		dst.FillRect(r.cellRect(*crash, cellW, cellH), r.Palette.Crash)
	}
}

// cellRect returns the pixel rectangle of a cell, minus the gutter on the
// right and bottom edges. A cell is never shrunk below one unit.
func (r *Renderer) cellRect(p game.Point, cellW, cellH int) image.Rectangle {
	x0, y0 := p.X*cellW, p.Y*cellH
	return image.Rect(x0, y0, x0+inset(cellW, r.Padding), y0+inset(cellH, r.Padding))
}

func inset(size, padding int) int {
	if size-padding < 1 {
		return min(size, 1)
	}
	return size - padding
}

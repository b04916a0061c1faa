package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Canvas is an in-memory RGBA surface. Drawing happens on a back buffer
// owned by the game loop; Flush publishes it so another goroutine can copy
// a complete frame with CopyPixels.
type Canvas struct {
	back       *image.RGBA
	background color.Color

	mu    sync.Mutex
	front []byte
}

// NewCanvas creates a canvas of the given pixel size
func NewCanvas(width, height int, background color.Color) *Canvas {
	c := &Canvas{
		back:       image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	c.front = make([]byte, len(c.back.Pix))
	c.Clear()
	c.Flush()
	return c
}

// Size returns the canvas size in pixels
func (c *Canvas) Size() (int, int) {
	b := c.back.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the back buffer with the background color
func (c *Canvas) Clear() {
	draw.Draw(c.back, c.back.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// FillRect paints rect on the back buffer
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.back, r.Intersect(c.back.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// Flush publishes the back buffer
func (c *Canvas) Flush() error {
	c.mu.Lock()
	copy(c.front, c.back.Pix)
	c.mu.Unlock()
	return nil
}

// At returns the color of one pixel of the frame being drawn
func (c *Canvas) At(x, y int) color.RGBA {
	return c.back.RGBAAt(x, y)
}

// CopyPixels copies the last published frame into dst (4*w*h bytes, RGBA)
func (c *Canvas) CopyPixels(dst []byte) {
	c.mu.Lock()
	copy(dst, c.front)
	c.mu.Unlock()
}

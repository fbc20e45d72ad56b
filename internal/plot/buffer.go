package plot

import (
	"image"
	"image/color"
)

// FrameBuffer holds the rendering target as a flat RGBA slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a buffer filled with bg.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	fb := &FrameBuffer{Width: w, Height: h, Color: make([]uint8, w*h*4)}
	fb.Fill(image.Rect(0, 0, w, h), bg)
	return fb
}

// Set writes one pixel; coordinates outside the buffer are ignored.
func (fb *FrameBuffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Color[i] = c.R
	fb.Color[i+1] = c.G
	fb.Color[i+2] = c.B
	fb.Color[i+3] = c.A
}

// Fill paints r clipped to the buffer.
func (fb *FrameBuffer) Fill(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fb.Set(x, y, c)
		}
	}
}

// Line draws a Bresenham line of the given thickness.
func (fb *FrameBuffer) Line(x0, y0, x1, y1, thick int, c color.NRGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	half := thick / 2
	for {
		fb.Fill(image.Rect(x0-half, y0-half, x0-half+thick, y0-half+thick), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Image copies the buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

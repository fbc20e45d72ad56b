// Package plot rasterizes the curves of a motion into a contact sheet, one
// cell per bone slot with the x, y and z sets overlaid.
package plot

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mot-retarget/internal/mathutil"
	"mot-retarget/internal/motion"
)

// Options controls the contact sheet layout.
type Options struct {
	Size         int  // output width in pixels
	Columns      int  // cells per row
	Supersample  int  // render scale before downsampling
	AnimatedOnly bool // skip slots whose three sets are all static
}

// DefaultOptions returns the layout used by the command line tools.
func DefaultOptions() Options {
	return Options{Size: 1024, Columns: 4, Supersample: 2}
}

var (
	background = color.NRGBA{24, 24, 28, 255}
	cellColor  = color.NRGBA{36, 36, 42, 255}
	gridColor  = color.NRGBA{60, 60, 68, 255}
	labelColor = color.NRGBA{210, 210, 210, 255}

	// Curve colors by axis.
	AxisColors = [3]color.NRGBA{
		{230, 80, 70, 255},
		{90, 200, 90, 255},
		{80, 130, 240, 255},
	}
)

const cellAspect = 2 // width / height

// Render draws every selected slot of m. Slots are labelled with their
// index and database bone id.
func Render(m *motion.Motion, opts Options) (*image.NRGBA, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultOptions().Columns
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}

	slots := selectSlots(m, opts.AnimatedOnly)
	if len(slots) == 0 {
		return nil, fmt.Errorf("plot: no slots to draw")
	}
	cols := min(opts.Columns, len(slots))
	rows := (len(slots) + cols - 1) / cols

	cellW := opts.Size / cols
	cellH := cellW / cellAspect
	if cellW < 8 || cellH < 4 {
		return nil, fmt.Errorf("plot: size %d too small for %d columns", opts.Size, cols)
	}
	outW, outH := cellW*cols, cellH*rows

	ss := opts.Supersample
	fb := NewFrameBuffer(outW*ss, outH*ss, background)
	frames := frameSpan(m)
	for i, slot := range slots {
		r := image.Rect(0, 0, cellW*ss, cellH*ss).Add(image.Pt((i%cols)*cellW*ss, (i/cols)*cellH*ss))
		drawCell(fb, r.Inset(ss), m, slot, frames, ss)
	}

	img := Downsample(fb.Image(), ss)
	for i, slot := range slots {
		x := (i%cols)*cellW + 4
		y := (i/cols)*cellH + 14
		label(img, x, y, fmt.Sprintf("%d: bone %d", slot, m.Bones[slot]))
	}
	return img, nil
}

func selectSlots(m *motion.Motion, animatedOnly bool) []int {
	var slots []int
	for slot := range m.Bones {
		if animatedOnly {
			c := m.Slot(slot)
			if !c[0].IsAnimated() && !c[1].IsAnimated() && !c[2].IsAnimated() {
				continue
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// frameSpan is the number of frames drawn across a cell: the declared
// frame count, or one past the last key when the header carries none.
func frameSpan(m *motion.Motion) int {
	n := int(m.FrameCount)
	for _, fd := range m.Sets {
		n = max(n, fd.LastFrame()+1)
	}
	return max(n, 1)
}

func drawCell(fb *FrameBuffer, r image.Rectangle, m *motion.Motion, slot, frames, thick int) {
	fb.Fill(r, cellColor)

	curves := m.Slot(slot)

	lo, hi := float32(0), float32(0)
	for i, fd := range curves {
		a, b := fd.Range()
		if i == 0 || a < lo {
			lo = a
		}
		if i == 0 || b > hi {
			hi = b
		}
	}
	if mathutil.ApproxEqual32(lo, hi, 1e-6) {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.1
	lo, hi = lo-pad, hi+pad

	toY := func(v float32) int {
		t := (v - lo) / (hi - lo)
		return r.Max.Y - 1 - int(t*float32(r.Dy()-1)+0.5)
	}
	if lo < 0 && hi > 0 {
		zero := toY(0)
		fb.Line(r.Min.X, zero, r.Max.X-1, zero, 1, gridColor)
	}

	w := r.Dx()
	for axis, fd := range curves {
		if fd.Kind == motion.KindNone {
			continue
		}
		px, py := 0, 0
		for i := 0; i < w; i++ {
			f := float32(0)
			if w > 1 {
				f = float32(i) / float32(w-1) * float32(frames-1)
			}
			cx, cy := r.Min.X+i, toY(fd.At(f))
			if i > 0 {
				fb.Line(px, py, cx, cy, thick, AxisColors[axis])
			}
			px, py = cx, cy
		}
	}
}

func label(img *image.NRGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

package plot

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled sheet by factor on both axes with
// CatmullRom filtering. The sheet is drawn fully opaque, so no alpha
// premultiplication is needed. Odd remainders are cropped.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	src := image.Rect(b.Min.X, b.Min.Y, b.Min.X+w*factor, b.Min.Y+h*factor)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

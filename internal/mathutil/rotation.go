package mathutil

import "math"

// DegToRad32 is the single-precision degree to radian factor.
const DegToRad32 = float32(math.Pi / 180)

// ApproxEqual32 reports whether a and b differ by at most eps.
func ApproxEqual32(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

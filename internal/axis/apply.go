package axis

import (
	"errors"
	"fmt"
	"math"

	"mot-retarget/internal/mathutil"
	"mot-retarget/internal/motion"
)

var (
	// ErrTooManyFrames is returned when a frame index does not fit a keyframe.
	ErrTooManyFrames = errors.New("axis: too many frames")
	// ErrChannelLength is returned when the three source channels differ in length.
	ErrChannelLength = errors.New("axis: source channels differ in length")
)

// Conversion is the unit conversion of the source triplet, indexed by
// source channel: value*Scale[a] + Offset[a].
type Conversion struct {
	Scale  [3]float32
	Offset [3]float32
}

// DefaultConversion flips the third source channel and leaves the rest.
func DefaultConversion() Conversion {
	return Conversion{Scale: [3]float32{1, 1, -1}}
}

// Unit is the identity conversion.
func Unit() Conversion {
	return Conversion{Scale: [3]float32{1, 1, 1}}
}

// Radians returns c with every scale pre-multiplied by π/180.
func (c Conversion) Radians() Conversion {
	for i := range c.Scale {
		c.Scale[i] *= mathutil.DegToRad32
	}
	return c
}

// Apply remaps three source channels into three dense Linear curves.
//
// Output axis k, driven by component (sign, a), gets
// src[a][f]*Scale[a]*sign + Offset[a] for every frame f in order.
// A rotation remap converts degrees to radians first.
func (d Directive) Apply(src [3][]float32, conv Conversion, rotation bool) ([3]motion.FrameData, error) {
	var out [3]motion.FrameData

	n := len(src[0])
	if len(src[1]) != n || len(src[2]) != n {
		return out, fmt.Errorf("%w: %d/%d/%d", ErrChannelLength, len(src[0]), len(src[1]), len(src[2]))
	}
	if n > math.MaxUint16+1 {
		return out, fmt.Errorf("%w: %d", ErrTooManyFrames, n)
	}
	if rotation {
		conv = conv.Radians()
	}

	for k, c := range d {
		a := c.Axis
		scale := conv.Scale[a] * c.Sign.Factor()
		off := conv.Offset[a]
		keys := make([]motion.Keyframe, n)
		for f, v := range src[a] {
			keys[f] = motion.Keyframe{Frame: uint16(f), Value: v*scale + off}
		}
		out[k] = motion.Linear(keys)
	}
	return out, nil
}

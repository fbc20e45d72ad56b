package motion

import "sort"

// At evaluates the curve at a (possibly fractional) frame. Linear curves
// interpolate linearly between keys, Smooth curves use cubic Hermite
// interpolation with the stored tangents (per frame). Frames outside the
// keyed range clamp to the nearest key.
func (fd FrameData) At(frame float32) float32 {
	switch fd.Kind {
	case KindPose:
		return fd.Pose
	case KindLinear:
		keys := fd.Linear
		if len(keys) == 0 {
			return 0
		}
		i := sort.Search(len(keys), func(i int) bool { return float32(keys[i].Frame) > frame })
		switch {
		case i == 0:
			return keys[0].Value
		case i == len(keys):
			return keys[len(keys)-1].Value
		}
		a, b := keys[i-1], keys[i]
		t := (frame - float32(a.Frame)) / float32(b.Frame-a.Frame)
		return a.Value + (b.Value-a.Value)*t
	case KindSmooth:
		keys := fd.Smooth
		if len(keys) == 0 {
			return 0
		}
		i := sort.Search(len(keys), func(i int) bool { return float32(keys[i].Frame) > frame })
		switch {
		case i == 0:
			return keys[0].Value
		case i == len(keys):
			return keys[len(keys)-1].Value
		}
		return hermite(keys[i-1], keys[i], frame)
	}
	return 0
}

func hermite(a, b SmoothKeyframe, frame float32) float32 {
	span := float32(b.Frame - a.Frame)
	t := (frame - float32(a.Frame)) / span
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*a.Value + h10*span*a.Tangent + h01*b.Value + h11*span*b.Tangent
}

// Range returns the minimum and maximum value over the stored samples.
func (fd FrameData) Range() (lo, hi float32) {
	switch fd.Kind {
	case KindPose:
		return fd.Pose, fd.Pose
	case KindLinear:
		for i, k := range fd.Linear {
			if i == 0 || k.Value < lo {
				lo = k.Value
			}
			if i == 0 || k.Value > hi {
				hi = k.Value
			}
		}
	case KindSmooth:
		for i, k := range fd.Smooth {
			if i == 0 || k.Value < lo {
				lo = k.Value
			}
			if i == 0 || k.Value > hi {
				hi = k.Value
			}
		}
	}
	return lo, hi
}

// LastFrame returns the frame of the final key, or 0 for None and Pose.
func (fd FrameData) LastFrame() int {
	switch fd.Kind {
	case KindLinear:
		if n := len(fd.Linear); n > 0 {
			return int(fd.Linear[n-1].Frame)
		}
	case KindSmooth:
		if n := len(fd.Smooth); n > 0 {
			return int(fd.Smooth[n-1].Frame)
		}
	}
	return 0
}

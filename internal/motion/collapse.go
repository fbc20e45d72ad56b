package motion

// Collapse reduces a curve to a single static pose. None and Pose pass
// through; Linear and Smooth keep their first sample's value. An empty
// curve collapses to Pose(0).
func Collapse(fd FrameData) FrameData {
	switch fd.Kind {
	case KindLinear, KindSmooth:
		return Pose(fd.First())
	}
	return fd
}

// First returns the value of the first sample, or 0 for None and empty curves.
func (fd FrameData) First() float32 {
	switch fd.Kind {
	case KindPose:
		return fd.Pose
	case KindLinear:
		if len(fd.Linear) > 0 {
			return fd.Linear[0].Value
		}
	case KindSmooth:
		if len(fd.Smooth) > 0 {
			return fd.Smooth[0].Value
		}
	}
	return 0
}

// CollapseAll collapses every set of m in place, in order.
func (m *Motion) CollapseAll() {
	for i := range m.Sets {
		m.Sets[i] = Collapse(m.Sets[i])
	}
}

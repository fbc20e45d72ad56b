// Package motion models the fixed-skeleton keyframe container ("mot"):
// a flat array of per-axis curves addressed by bone slot, and the bone id
// table that maps each slot to the motion-set database.
package motion

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind tags how one curve is stored. The numeric values are the 2-bit
// set type codes of the binary format.
type Kind int

const (
	KindNone Kind = iota
	KindPose
	KindLinear
	KindSmooth
)

// Keyframe is one sample of a curve.
type Keyframe struct {
	Frame uint16
	Value float32
}

// SmoothKeyframe is a sparse sample carrying a Hermite tangent.
type SmoothKeyframe struct {
	Keyframe
	Tangent float32
}

// FrameData holds one scalar curve of one bone axis.
// Only the field matching Kind is meaningful.
type FrameData struct {
	Kind   Kind
	Pose   float32
	Linear []Keyframe
	Smooth []SmoothKeyframe
}

func None() FrameData { return FrameData{Kind: KindNone} }

func Pose(v float32) FrameData { return FrameData{Kind: KindPose, Pose: v} }

func Linear(keys []Keyframe) FrameData { return FrameData{Kind: KindLinear, Linear: keys} }

func Smooth(keys []SmoothKeyframe) FrameData { return FrameData{Kind: KindSmooth, Smooth: keys} }

// Len returns the number of stored samples (1 for a pose, 0 for none).
func (fd FrameData) Len() int {
	switch fd.Kind {
	case KindPose:
		return 1
	case KindLinear:
		return len(fd.Linear)
	case KindSmooth:
		return len(fd.Smooth)
	}
	return 0
}

// IsAnimated reports whether the curve varies over time.
func (fd FrameData) IsAnimated() bool {
	return fd.Kind == KindLinear || fd.Kind == KindSmooth
}

// Motion is one decoded mot animation.
// Sets[i] belongs to bone slot i/3, axis i%3; Bones[slot] is the
// motion-set database bone id of that slot.
type Motion struct {
	FrameCount uint16
	Sets       []FrameData
	Bones      []uint16
}

// SlotCount returns the number of bone slots.
func (m *Motion) SlotCount() int { return len(m.Bones) }

// Slot returns the three curves of a bone slot.
func (m *Motion) Slot(slot int) [3]FrameData {
	return [3]FrameData{m.Sets[3*slot], m.Sets[3*slot+1], m.Sets[3*slot+2]}
}

// Validate checks the sets/bones invariant.
func (m *Motion) Validate() error {
	if len(m.Sets) != 3*len(m.Bones) {
		return &LayoutError{Sets: len(m.Sets), Bones: len(m.Bones)}
	}
	return nil
}

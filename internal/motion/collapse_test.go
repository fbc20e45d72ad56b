package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allVariants() map[string]FrameData {
	return map[string]FrameData{
		"none":         None(),
		"pose":         Pose(2.5),
		"linear":       Linear([]Keyframe{{Frame: 0, Value: 1}, {Frame: 1, Value: 9}}),
		"smooth":       Smooth([]SmoothKeyframe{{Keyframe: Keyframe{Frame: 4, Value: -3}, Tangent: 0.5}, {Keyframe: Keyframe{Frame: 8, Value: 7}}}),
		"empty linear": Linear(nil),
		"empty smooth": Smooth(nil),
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name string
		in   FrameData
		want FrameData
	}{
		{"none passes through", None(), None()},
		{"pose passes through", Pose(2.5), Pose(2.5)},
		{"linear keeps first value", Linear([]Keyframe{{0, 1}, {1, 9}}), Pose(1)},
		{"smooth keeps first value", Smooth([]SmoothKeyframe{{Keyframe{4, -3}, 0.5}, {Keyframe{8, 7}, 0}}), Pose(-3)},
		{"empty linear", Linear(nil), Pose(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collapse(tt.in))
		})
	}
}

func TestCollapseTotalAndIdempotent(t *testing.T) {
	for name, fd := range allVariants() {
		t.Run(name, func(t *testing.T) {
			once := Collapse(fd)
			assert.Equal(t, once, Collapse(once))
			assert.NotEqual(t, KindLinear, once.Kind)
			assert.NotEqual(t, KindSmooth, once.Kind)
			assert.False(t, once.IsAnimated())
		})
	}
}

func TestCollapseAll(t *testing.T) {
	m := &Motion{
		Sets: []FrameData{
			None(), Pose(1), Linear([]Keyframe{{0, 5}, {1, 6}}),
		},
		Bones: []uint16{3},
	}
	m.CollapseAll()
	assert.Equal(t, []FrameData{None(), Pose(1), Pose(5)}, m.Sets)

	m.CollapseAll()
	assert.Equal(t, []FrameData{None(), Pose(1), Pose(5)}, m.Sets)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "None", KindNone.String())
	assert.Equal(t, "Smooth", KindSmooth.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

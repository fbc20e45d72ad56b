package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mot-retarget/internal/motion"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Directive
	}{
		{"+x+y+z", Identity},
		{"+x+z+y", Directive{{Plus, X}, {Plus, Z}, {Plus, Y}}},
		{"-x0y+z", Directive{{Minus, X}, {Zero, Y}, {Plus, Z}}},
		{"0z0z0z", Directive{{Zero, Z}, {Zero, Z}, {Zero, Z}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "+x+y", "+x+y+z+", "*x+y+z", "+w+y+z", "+X+Y+Z", "x+y+z+", "+x+y+ü"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrMalformedDirective)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("bogus!") })
	assert.Equal(t, Identity, MustParse("+x+y+z"))
}

func values(fd motion.FrameData) []float32 {
	out := make([]float32, len(fd.Linear))
	for i, k := range fd.Linear {
		out[i] = k.Value
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	src := [3][]float32{{1, 2}, {3, 4}, {5, 6}}
	out, err := MustParse("+x+y+z").Apply(src, Unit(), false)
	require.NoError(t, err)

	for k := range out {
		assert.Equal(t, motion.KindLinear, out[k].Kind)
		assert.Equal(t, src[k], values(out[k]))
		for f, key := range out[k].Linear {
			assert.Equal(t, uint16(f), key.Frame)
		}
	}
}

func TestApplyZeroSign(t *testing.T) {
	src := [3][]float32{{1, -7}, {123, -456}, {5, 9}}
	out, err := MustParse("-x0y+z").Apply(src, Unit(), false)
	require.NoError(t, err)

	assert.Equal(t, []float32{-1, 7}, values(out[0]))
	for _, v := range values(out[1]) {
		assert.Zero(t, v)
	}
	assert.Equal(t, []float32{5, 9}, values(out[2]))
}

func TestApplyRotationConvertsDegrees(t *testing.T) {
	src := [3][]float32{{90}, {-180}, {0}}
	out, err := Identity.Apply(src, Unit(), true)
	require.NoError(t, err)

	assert.InDelta(t, 1.5708, out[0].Linear[0].Value, 1e-4)
	assert.InDelta(t, -3.14159, out[1].Linear[0].Value, 1e-4)
	assert.Zero(t, out[2].Linear[0].Value)
}

func TestApplyScaleFollowsSourceChannel(t *testing.T) {
	src := [3][]float32{{1, 4}, {2, 5}, {3, 6}}
	out, err := MustParse("+x+z+y").Apply(src, DefaultConversion(), false)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 4}, values(out[0]))
	assert.Equal(t, []float32{-3, -6}, values(out[1]))
	assert.Equal(t, []float32{2, 5}, values(out[2]))
}

func TestApplyOffset(t *testing.T) {
	conv := Conversion{Scale: [3]float32{2, 1, 1}, Offset: [3]float32{10, 0, 0}}
	out, err := MustParse("-x+y+z").Apply([3][]float32{{1}, {0}, {0}}, conv, false)
	require.NoError(t, err)
	assert.Equal(t, []float32{8}, values(out[0]))
}

func TestApplyEmpty(t *testing.T) {
	out, err := Identity.Apply([3][]float32{}, Unit(), false)
	require.NoError(t, err)
	for _, fd := range out {
		assert.Equal(t, motion.KindLinear, fd.Kind)
		assert.Empty(t, fd.Linear)
	}
}

func TestApplyErrors(t *testing.T) {
	_, err := Identity.Apply([3][]float32{{1, 2}, {1}, {1, 2}}, Unit(), false)
	assert.ErrorIs(t, err, ErrChannelLength)

	big := make([]float32, 1<<16+1)
	_, err = Identity.Apply([3][]float32{big, big, big}, Unit(), false)
	assert.ErrorIs(t, err, ErrTooManyFrames)
}

func TestRadiansDoesNotMutate(t *testing.T) {
	c := DefaultConversion()
	r := c.Radians()
	assert.Equal(t, float32(-1), c.Scale[2])
	assert.InDelta(t, -0.0174533, r.Scale[2], 1e-6)
}

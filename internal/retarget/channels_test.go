package retarget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mot-retarget/internal/bvh"
)

func chans(n int) []bvh.Channel {
	out := make([]bvh.Channel, n)
	for i := range out {
		out[i] = bvh.Channel{Type: bvh.ChannelType(i % 6), Index: 100 + i}
	}
	return out
}

func TestSelectChannels(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		rotation bool
		first    int
	}{
		{"position of six", 6, false, 100},
		{"rotation of six", 6, true, 103},
		{"rotation of three falls back", 3, true, 100},
		{"position of three", 3, false, 100},
		{"rotation of nine", 9, true, 103},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectChannels(chans(tt.n), tt.rotation)
			require.NoError(t, err)
			assert.Equal(t, tt.first, got[0].Index)
			assert.Equal(t, tt.first+1, got[1].Index)
			assert.Equal(t, tt.first+2, got[2].Index)
		})
	}
}

func TestSelectChannelsKeepsDeclaredOrder(t *testing.T) {
	in := []bvh.Channel{{Type: bvh.ZRotation, Index: 0}, {Type: bvh.XRotation, Index: 1}, {Type: bvh.YRotation, Index: 2}}
	got, err := SelectChannels(in, true)
	require.NoError(t, err)
	assert.Equal(t, bvh.ZRotation, got[0].Type)
	assert.Equal(t, bvh.YRotation, got[2].Type)
}

func TestSelectChannelsShort(t *testing.T) {
	for _, tc := range []struct {
		n        int
		rotation bool
	}{{0, false}, {2, true}, {4, true}, {5, true}} {
		_, err := SelectChannels(chans(tc.n), tc.rotation)
		assert.ErrorIs(t, err, ErrShortChannels, "n=%d rotation=%v", tc.n, tc.rotation)
	}

	_, err := SelectChannels(chans(4), false)
	assert.NoError(t, err)
}

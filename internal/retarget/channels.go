package retarget

import (
	"errors"
	"fmt"

	"mot-retarget/internal/bvh"
)

// ErrShortChannels is returned when a joint has too few channels for the
// requested triplet.
var ErrShortChannels = errors.New("retarget: joint has too few channels")

// SelectChannels picks the triplet fed to the axis remap. A rotation joint
// with more than three channels uses channels 3..5 (position triplet
// first, as written by most exporters); everything else uses 0..2. Axis
// letters of a directive index this selection, not the channel types.
func SelectChannels(channels []bvh.Channel, rotation bool) ([3]bvh.Channel, error) {
	var out [3]bvh.Channel
	if len(channels) < 3 {
		return out, fmt.Errorf("%w: %d", ErrShortChannels, len(channels))
	}
	base := 0
	if rotation && len(channels) > 3 {
		base = 3
		if len(channels) < 6 {
			return out, fmt.Errorf("%w: %d, need 6 for a rotation triplet", ErrShortChannels, len(channels))
		}
	}
	copy(out[:], channels[base:base+3])
	return out, nil
}

// Package bvh parses Biovision hierarchical motion files: a joint
// hierarchy with per-joint channel lists, followed by one row of channel
// samples per frame.
package bvh

import "fmt"

// ChannelType names one animated degree of freedom.
type ChannelType uint8

const (
	XPosition ChannelType = iota
	YPosition
	ZPosition
	XRotation
	YRotation
	ZRotation
)

var channelNames = [...]string{"Xposition", "Yposition", "Zposition", "Xrotation", "Yrotation", "Zrotation"}

func (c ChannelType) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("ChannelType(%d)", uint8(c))
}

// IsRotation reports whether the channel carries an angle (degrees).
func (c ChannelType) IsRotation() bool { return c >= XRotation && c <= ZRotation }

func parseChannelType(s string) (ChannelType, bool) {
	for i, n := range channelNames {
		if n == s {
			return ChannelType(i), true
		}
	}
	return 0, false
}

// Channel is one declared channel of a joint. Index is the column of the
// channel in every frame row.
type Channel struct {
	Type  ChannelType
	Index int
}

type Joint struct {
	Name     string
	Parent   int // index into Bvh.Joints, -1 for a root
	Depth    int
	Offset   [3]float32
	Channels []Channel

	HasEndSite bool
	EndSite    [3]float32
}

// Bvh is a fully loaded motion file.
type Bvh struct {
	Joints    []Joint
	Frames    [][]float32
	FrameTime float64
}

// Hierarchy returns the joints in depth-first declaration order.
func (b *Bvh) Hierarchy() []Joint { return b.Joints }

// FrameCount returns the number of motion rows.
func (b *Bvh) FrameCount() int { return len(b.Frames) }

// ChannelCount returns the width of one frame row.
func (b *Bvh) ChannelCount() int {
	n := 0
	for _, j := range b.Joints {
		n += len(j.Channels)
	}
	return n
}

// Sample returns the value of a channel at a frame.
func (b *Bvh) Sample(frame int, ch Channel) float32 {
	return b.Frames[frame][ch.Index]
}

// Samples returns a channel's value for every frame, in frame order.
func (b *Bvh) Samples(ch Channel) []float32 {
	out := make([]float32, len(b.Frames))
	for i, row := range b.Frames {
		out[i] = row[ch.Index]
	}
	return out
}

// Joint returns the first joint with the given name.
func (b *Bvh) Joint(name string) (*Joint, bool) {
	for i := range b.Joints {
		if b.Joints[i].Name == name {
			return &b.Joints[i], true
		}
	}
	return nil, false
}

package motion

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"mot-retarget/internal/binio"
)

const (
	headerEntrySize = 16
	setCountMask    = 0x3FFF
)

// Load reads and decodes a mot file.
func Load(path string, order binary.ByteOrder) (*Motion, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mot: read %s: %w", path, err)
	}
	m, err := Decode(raw, order)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Decode parses the first motion of a mot file.
//
// The file starts with 16-byte entries {info, types, data, bones} of u32
// offsets, terminated by an all-zero entry. info holds the set count (low
// 14 bits) and the frame count; types packs a 2-bit Kind per set into u16
// words; data holds the per-set payloads; bones holds one u16 id per slot.
func Decode(data []byte, order binary.ByteOrder) (*Motion, error) {
	r := binio.NewReader(data, order)

	infoOff := r.U32()
	typesOff := r.U32()
	dataOff := r.U32()
	bonesOff := r.U32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot: read header: %w", err)
	}
	if infoOff == 0 && typesOff == 0 && dataOff == 0 && bonesOff == 0 {
		return nil, ErrNoMotion
	}

	r.Seek(int(infoOff))
	setCount := int(r.U16() & setCountMask)
	frameCount := r.U16()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot: read info: %w", err)
	}
	if setCount%3 != 0 {
		return nil, &LayoutError{Sets: setCount, Bones: setCount / 3}
	}

	kinds := make([]Kind, setCount)
	r.Seek(int(typesOff))
	var word uint16
	for i := 0; i < setCount; i++ {
		if i%8 == 0 {
			word = r.U16()
		}
		kinds[i] = Kind(word >> ((i % 8) * 2) & 3)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot: read set types: %w", err)
	}

	m := &Motion{
		FrameCount: frameCount,
		Sets:       make([]FrameData, setCount),
		Bones:      make([]uint16, setCount/3),
	}

	r.Seek(int(dataOff))
	for i, kind := range kinds {
		m.Sets[i] = readSet(r, kind)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot: read set data: %w", err)
	}

	r.Seek(int(bonesOff))
	for i := range m.Bones {
		m.Bones[i] = r.U16()
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot: read bone ids: %w", err)
	}

	return m, nil
}

func readSet(r *binio.Reader, kind Kind) FrameData {
	switch kind {
	case KindPose:
		return Pose(r.F32())
	case KindLinear:
		frames := readFrames(r)
		keys := make([]Keyframe, len(frames))
		for i, f := range frames {
			keys[i] = Keyframe{Frame: f, Value: r.F32()}
		}
		return Linear(keys)
	case KindSmooth:
		frames := readFrames(r)
		keys := make([]SmoothKeyframe, len(frames))
		for i, f := range frames {
			keys[i].Frame = f
			keys[i].Value = r.F32()
			keys[i].Tangent = r.F32()
		}
		return Smooth(keys)
	}
	return None()
}

// readFrames reads a key count, that many frame indices, and the padding
// that aligns the following values to 4 bytes.
func readFrames(r *binio.Reader) []uint16 {
	n := int(r.U16())
	if !r.Need(2 * n) {
		return nil
	}
	frames := make([]uint16, n)
	for i := range frames {
		frames[i] = r.U16()
	}
	r.Align(4)
	return frames
}

// ReadFrom decodes a little-endian mot stream.
func ReadFrom(rd io.Reader) (*Motion, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("mot: read: %w", err)
	}
	return Decode(data, binary.LittleEndian)
}

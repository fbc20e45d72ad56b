package motion

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"mot-retarget/internal/binio"
)

// Encode serializes m as a single-motion mot file.
func Encode(m *Motion, order binary.ByteOrder) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Sets) > setCountMask {
		return nil, fmt.Errorf("mot: %d sets exceed the format limit of %d", len(m.Sets), setCountMask)
	}

	w := binio.NewWriter(order)

	// header entry + terminator, offsets patched below
	for i := 0; i < 2*headerEntrySize; i++ {
		w.U8(0)
	}

	infoOff := w.Len()
	w.U16(uint16(len(m.Sets)))
	w.U16(m.FrameCount)

	typesOff := w.Len()
	for i := 0; i < len(m.Sets); i += 8 {
		var word uint16
		for j := i; j < i+8 && j < len(m.Sets); j++ {
			word |= uint16(m.Sets[j].Kind&3) << ((j % 8) * 2)
		}
		w.U16(word)
	}
	w.Align(4)

	dataOff := w.Len()
	for i, fd := range m.Sets {
		if err := writeSet(w, fd); err != nil {
			return nil, fmt.Errorf("mot: set %d: %w", i, err)
		}
	}
	w.Align(4)

	bonesOff := w.Len()
	for _, id := range m.Bones {
		w.U16(id)
	}
	w.Align(4)

	w.PutU32At(0, uint32(infoOff))
	w.PutU32At(4, uint32(typesOff))
	w.PutU32At(8, uint32(dataOff))
	w.PutU32At(12, uint32(bonesOff))

	return w.Bytes(), nil
}

func writeSet(w *binio.Writer, fd FrameData) error {
	switch fd.Kind {
	case KindNone:
	case KindPose:
		w.F32(fd.Pose)
	case KindLinear:
		if len(fd.Linear) > 0xFFFF {
			return fmt.Errorf("%d keys exceed the format limit", len(fd.Linear))
		}
		w.U16(uint16(len(fd.Linear)))
		for _, k := range fd.Linear {
			w.U16(k.Frame)
		}
		w.Align(4)
		for _, k := range fd.Linear {
			w.F32(k.Value)
		}
	case KindSmooth:
		if len(fd.Smooth) > 0xFFFF {
			return fmt.Errorf("%d keys exceed the format limit", len(fd.Smooth))
		}
		w.U16(uint16(len(fd.Smooth)))
		for _, k := range fd.Smooth {
			w.U16(k.Frame)
		}
		w.Align(4)
		for _, k := range fd.Smooth {
			w.F32(k.Value)
			w.F32(k.Tangent)
		}
	default:
		return fmt.Errorf("unknown kind %v", fd.Kind)
	}
	return nil
}

// WriteTo writes m little-endian to w.
func (m *Motion) WriteTo(w io.Writer) (int64, error) {
	data, err := Encode(m, binary.LittleEndian)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save encodes m and writes it to path.
func Save(path string, m *Motion, order binary.ByteOrder) error {
	data, err := Encode(m, order)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("mot: write %s: %w", path, err)
	}
	return nil
}

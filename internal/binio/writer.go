package binio

import (
	"encoding/binary"
	"math"
)

// Writer appends fixed-width values to a growing buffer. Offsets that are
// only known later are reserved with a placeholder and patched with PutU32At.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

func NewWriter(order binary.ByteOrder) *Writer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{order: order}
}

func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) U16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) U32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// CString appends s followed by a null terminator and returns its offset.
func (w *Writer) CString(s string) uint32 {
	off := uint32(len(w.buf))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
	return off
}

// Align pads with zero bytes up to the next multiple of n.
func (w *Writer) Align(n int) {
	for len(w.buf)%n != 0 {
		w.buf = append(w.buf, 0)
	}
}

// PutU32At overwrites a previously written u32 at off.
func (w *Writer) PutU32At(off int, v uint32) {
	w.order.PutUint32(w.buf[off:], v)
}

// Package binio holds the offset-addressed reader and writer shared by the
// mot, mot_db and bone_data codecs.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTruncated is returned when a read runs past the end of the data.
var ErrTruncated = errors.New("binio: truncated data")

// Reader reads fixed-width values from an in-memory buffer.
// The first out-of-range read latches Err; every later read returns zero.
type Reader struct {
	data  []byte
	off   int
	order binary.ByteOrder
	err   error
}

// NewReader returns a Reader over data using the given byte order.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{data: data, order: order}
}

// Err returns the first error hit by the reader, if any.
func (r *Reader) Err() error { return r.err }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Seek moves the read position to an absolute offset.
func (r *Reader) Seek(off int) {
	if r.err != nil {
		return
	}
	if off < 0 || off > len(r.data) {
		r.err = fmt.Errorf("%w: seek to %d beyond %d bytes", ErrTruncated, off, len(r.data))
		return
	}
	r.off = off
}

// Align advances the read position to the next multiple of n.
func (r *Reader) Align(n int) {
	if rem := r.off % n; rem != 0 {
		r.skip(n - rem)
	}
}

func (r *Reader) skip(n int) {
	if r.Need(n) {
		r.off += n
	}
}

// Need reports whether n more bytes can be read, latching ErrTruncated if not.
func (r *Reader) Need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, len(r.data)-r.off)
		r.off = len(r.data)
		return false
	}
	return true
}

func (r *Reader) U8() uint8 {
	if !r.Need(1) {
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *Reader) U16() uint16 {
	if !r.Need(2) {
		return 0
	}
	v := r.order.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *Reader) U32() uint32 {
	if !r.Need(4) {
		return 0
	}
	v := r.order.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// CString reads a null-terminated string at an absolute offset without
// moving the read position.
func (r *Reader) CString(off uint32) string {
	if r.err != nil {
		return ""
	}
	start := int(off)
	if start >= len(r.data) {
		r.err = fmt.Errorf("%w: string at %d beyond %d bytes", ErrTruncated, start, len(r.data))
		return ""
	}
	for i := start; i < len(r.data); i++ {
		if r.data[i] == 0 {
			return string(r.data[start:i])
		}
	}
	r.err = fmt.Errorf("%w: unterminated string at %d", ErrTruncated, start)
	return ""
}

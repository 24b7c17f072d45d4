package wire

import (
	"encoding/binary"
	"math"
)

// Writer accumulates bytes for the encoders used by the round-trip tests
// (see ExtraData/InfoNew encoding in the a2s package).
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Uint8 appends one byte.
func (w *Writer) Uint8(v byte) { w.buf = append(w.buf, v) }

// Int16 appends a little-endian signed 16-bit integer.
func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }

// Uint16 appends a little-endian unsigned 16-bit integer.
func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Uint32 appends a little-endian unsigned 32-bit integer.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Uint64 appends a little-endian unsigned 64-bit integer.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Float32 appends a little-endian IEEE-754 single-precision float.
func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

// CString appends s followed by a terminating NUL byte.
func (w *Writer) CString(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

package codec

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates LURK wire fields before a single flush to the
// underlying connection. Uses Little-Endian byte order throughout.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.WriteByte(b)
}

// WriteUint16 writes a u16 (2 bytes, LE).
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt16 writes a signed 16-bit value (2 bytes, LE).
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteFixedString writes s into a null-padded field of the given width,
// truncating s if it is too long to fit.
func (w *Writer) WriteFixedString(s string, width int) {
	b := make([]byte, width)
	copy(b, s)
	w.buf.Write(b)
}

// WriteString writes the raw bytes of s with no padding or terminator —
// used for variable-length description/message payloads.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// WriteBytes writes raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Write(b)
}

// Bytes returns the accumulated frame.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes accumulated so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Reader decodes LURK wire fields from a byte stream.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	r io.Reader
}

// NewReader creates a Reader over an underlying byte stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("ReadByte: %w", err)
	}
	return b[0], nil
}

// ReadUint16 reads a u16 (2 bytes, LE).
func (r *Reader) ReadUint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, fmt.Errorf("ReadUint16: %w", err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadInt16 reads a signed 16-bit value (2 bytes, LE).
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("ReadBytes: negative count %d", n)
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("ReadBytes(%d): %w", n, err)
	}
	return buf, nil
}

// ReadFixedString reads a width-byte field and truncates at the first
// 0x00, producing the logical string; fixed name fields arrive
// null-padded.
func (r *Reader) ReadFixedString(width int) (string, error) {
	raw, err := r.ReadBytes(width)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0x00); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// ReadString reads n raw bytes and returns them as a string with no
// padding/truncation logic — used for variable-length description and
// message payloads whose length was already read from a preceding
// length field.
func (r *Reader) ReadString(n int) (string, error) {
	raw, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

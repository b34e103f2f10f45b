package classfile

import (
	"encoding/binary"
	"fmt"
)

// FormatError reports malformed class-file data.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("class file offset %d: %s", e.Offset, e.Msg)
}

// byteReader is a big-endian cursor that records the first failure and
// returns zero values afterwards, so callers check err once per structure.
type byteReader struct {
	data []byte
	pos  int
	err  error
}

func (r *byteReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = &FormatError{Offset: r.pos, Msg: fmt.Sprintf(format, args...)}
	}
}

func (r *byteReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}

	if n < 0 || r.pos+n > len(r.data) {
		r.fail("unexpected end of data reading %d bytes", n)
		return nil
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b
}

func (r *byteReader) u1() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (r *byteReader) u2() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint16(b)
}

func (r *byteReader) u4() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint32(b)
}

func (r *byteReader) u8() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return binary.BigEndian.Uint64(b)
}

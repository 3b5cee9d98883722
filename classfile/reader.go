package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader reads big-endian class file primitives from a stream. The first
// short read sticks: later reads return zero values and Err reports it.
type Reader struct {
	r   io.Reader
	n   int64
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error hit by the reader, wrapping ErrUnexpectedEOF
// when the stream ran out.
func (r *Reader) Err() error {
	return r.err
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.n
}

func (r *Reader) fill(buf []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, buf)
	r.n += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.err = fmt.Errorf("%w: wanted %d bytes at offset %d, got %d", ErrUnexpectedEOF, len(buf), r.n-int64(n), n)
		} else {
			r.err = err
		}
		return false
	}
	return true
}

func (r *Reader) ReadU1() uint8 {
	var buf [1]byte
	if !r.fill(buf[:]) {
		return 0
	}
	return buf[0]
}

func (r *Reader) ReadU2() uint16 {
	var buf [2]byte
	if !r.fill(buf[:]) {
		return 0
	}
	return binary.BigEndian.Uint16(buf[:])
}

func (r *Reader) ReadU4() uint32 {
	var buf [4]byte
	if !r.fill(buf[:]) {
		return 0
	}
	return binary.BigEndian.Uint32(buf[:])
}

func (r *Reader) ReadBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if !r.fill(buf) {
		return nil
	}
	return buf
}

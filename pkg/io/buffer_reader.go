package io

import (
	"encoding/binary"
	"fmt"
	"io"
)

// BinReader is a binary reader working on top of a byte buffer. Like
// BinWriter it keeps the first error encountered and turns all subsequent
// reads into no-ops, so the caller checks Err once after decoding the whole
// structure.
type BinReader struct {
	data []byte
	pos  int
	Err  error
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	return &BinReader{data: b}
}

// Len returns the number of unread bytes.
func (r *BinReader) Len() int {
	return len(r.data) - r.pos
}

// Pos returns the current reading position.
func (r *BinReader) Pos() int {
	return r.pos
}

func (r *BinReader) next(n int) []byte {
	if r.Err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		if r.pos == len(r.data) {
			r.Err = io.EOF
		} else {
			r.Err = io.ErrUnexpectedEOF
		}
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadB reads a byte from the underlying buffer.
func (r *BinReader) ReadB() byte {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadU16BE reads a big-endian encoded uint16 value from the underlying
// buffer.
func (r *BinReader) ReadU16BE() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// ReadU32BE reads a big-endian encoded uint32 value from the underlying
// buffer.
func (r *BinReader) ReadU32BE() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// ReadBytes copies fixed-size data from the buffer into the provided slice.
func (r *BinReader) ReadBytes(buf []byte) {
	b := r.next(len(buf))
	if b != nil {
		copy(buf, b)
	}
}

// ReadN returns a copy of the next n bytes.
func (r *BinReader) ReadN(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	res := make([]byte, n)
	copy(res, b)
	return res
}

// ReadU32Bytes reads a byte slice prefixed with its big-endian uint32
// length. The length is checked against the remaining buffer before any
// allocation happens.
func (r *BinReader) ReadU32Bytes() []byte {
	n := r.ReadU32BE()
	if r.Err != nil {
		return nil
	}
	if uint64(n) > uint64(r.Len()) {
		r.Err = fmt.Errorf("%w: segment of %d bytes, %d left", io.ErrUnexpectedEOF, n, r.Len())
		return nil
	}
	return r.ReadN(int(n))
}

// ReadRest returns a copy of all unread bytes.
func (r *BinReader) ReadRest() []byte {
	return r.ReadN(r.Len())
}

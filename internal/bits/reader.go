// Package bits reads a DEFLATE bit stream from a byte source.
//
// DEFLATE packs two kinds of fields into the same bytes with opposite bit
// orders (RFC 1951, section 3.1.1):
//   - data fields are read LSB-first within each byte
//   - Huffman codes are read one bit at a time and assembled MSB-first
//
// The reader keeps an accumulator of buffered bits and refills it a whole
// byte at a time, so both read modes consume bytes identically.
package bits

import (
	"github.com/llehouerou/go-png/internal/bytestream"
)

// Reader reads bits from a byte source.
type Reader struct {
	src    *bytestream.Reader
	buf    uint32 // buffered bits, next bit to deliver in bit 0
	bufLen uint   // number of valid bits in buf
}

// NewReader creates a Reader over src.
func NewReader(src *bytestream.Reader) *Reader {
	return &Reader{src: src}
}

// GetDataBits reads n bits (n <= 16) LSB-first and returns them as an
// integer whose bit 0 is the first bit read. The only failure is running
// out of source bytes, reported as bytestream.ErrEOF.
func (r *Reader) GetDataBits(n uint) (uint32, error) {
	for r.bufLen < n {
		b, err := r.src.GetByte()
		if err != nil {
			return 0, err
		}
		r.buf |= uint32(b) << r.bufLen
		r.bufLen += 8
	}
	v := r.buf & (1<<n - 1)
	r.buf >>= n
	r.bufLen -= n
	return v, nil
}

// GetBit reads a single bit.
func (r *Reader) GetBit() (uint32, error) {
	return r.GetDataBits(1)
}

// GetHuffmanBits reads n bits (n <= 15) one at a time and assembles them
// MSB-first: the first bit read ends up as the highest-order bit of the
// result.
func (r *Reader) GetHuffmanBits(n uint) (uint32, error) {
	var v uint32
	for i := uint(0); i < n; i++ {
		bit, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | bit
	}
	return v, nil
}

// AlignToByte discards the buffered bits of the current partial byte, so
// the next read starts on a byte boundary. Discarded bits are padding
// (RFC 1951, section 3.2.4). Whole buffered bytes are kept.
func (r *Reader) AlignToByte() {
	n := r.bufLen % 8
	r.buf >>= n
	r.bufLen -= n
}

// EOF reports whether no buffered bits remain and the byte source is
// exhausted.
func (r *Reader) EOF() bool {
	return r.bufLen == 0 && r.src.EOF()
}

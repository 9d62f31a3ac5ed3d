// Package adler32 implements the rolling checksum used as the zlib
// trailer (RFC 1950, section 9): two 16-bit sums over the uncompressed
// byte stream, combined as s2<<16 | s1.
package adler32

import "github.com/llehouerou/go-png/internal/bytestream"

const (
	// base is the largest prime smaller than 65536.
	base = 65521
	// Initial is the checksum of the empty stream.
	Initial = 1
)

// Digest accumulates the checksum of a byte stream. The zero value is not
// valid; use New.
type Digest struct {
	s1, s2 uint32
}

// New returns a Digest initialized to the checksum of the empty stream.
func New() *Digest {
	return &Digest{s1: 1}
}

// Update folds p into the running checksum.
func (d *Digest) Update(p []byte) {
	for _, b := range p {
		d.s1 = (d.s1 + uint32(b)) % base
		d.s2 = (d.s2 + d.s1) % base
	}
}

// Sum returns the current checksum value.
func (d *Digest) Sum() uint32 {
	return d.s2<<16 | d.s1
}

// ReadChecksum consumes a four-byte big-endian checksum from r.
func ReadChecksum(r *bytestream.Reader) (uint32, error) {
	return r.Uint32()
}

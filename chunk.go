package png

import "github.com/llehouerou/go-png/internal/bytestream"

// chunkType is the four-byte chunk type, kept as a big-endian integer.
// Bit 5 of each byte carries a property flag (PNG 1.2, section 3.3).
type chunkType uint32

const (
	chunkIHDR chunkType = 'I'<<24 | 'H'<<16 | 'D'<<8 | 'R'
	chunkIDAT chunkType = 'I'<<24 | 'D'<<16 | 'A'<<8 | 'T'
	chunkIEND chunkType = 'I'<<24 | 'E'<<16 | 'N'<<8 | 'D'
)

func (t chunkType) String() string {
	return string([]byte{
		byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t),
	})
}

// Ancillary reports whether the chunk may be skipped by decoders that do
// not recognize it. Critical chunks have the bit clear.
func (t chunkType) Ancillary() bool { return t>>24&0x20 != 0 }

// Private reports whether the chunk type is privately defined.
func (t chunkType) Private() bool { return t>>16&0x20 != 0 }

// Reserved reports the state of the reserved property bit.
func (t chunkType) Reserved() bool { return t>>8&0x20 != 0 }

// SafeToCopy reports whether editors may copy the chunk blindly.
func (t chunkType) SafeToCopy() bool { return t&0x20 != 0 }

// chunkCRCSize is the CRC trailing every chunk. It is read past, not
// validated.
const chunkCRCSize = 4

// chunk is one chunk header: the payload length and the type. The
// payload and CRC follow in the byte stream.
type chunk struct {
	length uint32
	typ    chunkType
}

func readChunkHeader(r *bytestream.Reader) (chunk, error) {
	length, err := r.Uint32()
	if err != nil {
		return chunk{}, err
	}
	typ, err := r.Uint32()
	if err != nil {
		return chunk{}, err
	}
	return chunk{length: length, typ: chunkType(typ)}, nil
}

// skip advances past the chunk's payload and CRC.
func (c chunk) skip(r *bytestream.Reader) {
	r.Skip(int(c.length) + chunkCRCSize)
}

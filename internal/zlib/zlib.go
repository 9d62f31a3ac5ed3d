// Package zlib strips the zlib framing (RFC 1950) from around a DEFLATE
// body: the CMF/FLG header, an optional preset-dictionary id, and the
// trailing Adler-32 over the decompressed output.
package zlib

import (
	"errors"

	"github.com/llehouerou/go-png/internal/adler32"
	"github.com/llehouerou/go-png/internal/bits"
	"github.com/llehouerou/go-png/internal/bytestream"
	"github.com/llehouerou/go-png/internal/flate"
)

const (
	compressionMethodDeflate = 8
	flagPresetDictionary     = 1 << 5
)

var (
	// ErrPrematureEndOfStream is returned when the frame ends before the
	// header, body, or trailer is complete.
	ErrPrematureEndOfStream = errors.New("zlib: premature end of stream")
	// ErrUnsupportedCompressionMethod is returned when CM is not DEFLATE.
	ErrUnsupportedCompressionMethod = errors.New("zlib: compression method is not deflate")
	// ErrHeaderChecksum is returned when the CMF/FLG check bits do not
	// validate.
	ErrHeaderChecksum = errors.New("zlib: header check bits do not validate")
	// ErrDeflate is returned, joined with the underlying cause, when the
	// DEFLATE body is corrupt.
	ErrDeflate = errors.New("zlib: deflate body is corrupt")
	// ErrChecksum is returned when the trailing Adler-32 does not match
	// the decompressed output.
	ErrChecksum = errors.New("zlib: adler-32 mismatch")
)

// Decompress reads one zlib frame of the given total length from r and
// streams the decompressed bytes to emit (which may be nil). The length
// covers the whole frame, header and trailer included; within a PNG it is
// the summed size of the IDAT payloads carrying the frame. The trailing
// checksum is verified after the DEFLATE body completes.
func Decompress(r *bytestream.Reader, length int, emit func(block []byte)) error {
	cmf, err := r.GetByte()
	if err != nil {
		return ErrPrematureEndOfStream
	}
	flg, err := r.GetByte()
	if err != nil {
		return ErrPrematureEndOfStream
	}

	if cmf&0x0f != compressionMethodDeflate {
		return ErrUnsupportedCompressionMethod
	}
	if (uint32(cmf)*256+uint32(flg))%31 != 0 {
		return ErrHeaderChecksum
	}

	// A preset dictionary only matters for recompression; skip its id.
	body := length - 2 - 4
	if flg&flagPresetDictionary != 0 {
		r.Skip(4)
		body -= 4
	}
	if body < 0 {
		return ErrPrematureEndOfStream
	}

	compressed, err := r.Slice(body)
	if err != nil {
		return ErrPrematureEndOfStream
	}
	want, err := adler32.ReadChecksum(r)
	if err != nil {
		return ErrPrematureEndOfStream
	}

	digest := adler32.New()
	br := bits.NewReader(bytestream.NewReader(compressed))
	err = flate.Decompress(br, func(block []byte) {
		digest.Update(block)
		if emit != nil {
			emit(block)
		}
	})
	if err != nil {
		return errors.Join(ErrDeflate, err)
	}
	if digest.Sum() != want {
		return ErrChecksum
	}
	return nil
}

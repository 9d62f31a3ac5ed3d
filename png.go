package png

import (
	"errors"

	"github.com/llehouerou/go-png/internal/bytestream"
	"github.com/llehouerou/go-png/internal/zlib"
)

// pngSignature is the fixed eight-byte file signature (PNG 1.2,
// section 3.1).
var pngSignature = [8]byte{137, 'P', 'N', 'G', '\r', '\n', 26, '\n'}

// HeaderFunc receives the validated image header, exactly once, before
// any scanline is delivered.
type HeaderFunc func(hdr ImageHeader)

// ScanlineFunc receives each reconstructed scanline in row order. The
// slice is borrowed for the duration of the call; its buffer is reused
// for later rows.
type ScanlineFunc func(line []byte)

// Decode decodes the PNG in data, delivering the header and every
// scanline through the given sinks. Either sink may be nil. It returns
// nil once IEND is reached (or the data ends cleanly between chunks);
// on failure, zero or more scanlines may already have been delivered.
//
// The sinks must not re-enter the decoder.
func Decode(data []byte, onHeader HeaderFunc, onScanline ScanlineFunc) error {
	r := bytestream.NewReader(data)

	for _, want := range pngSignature {
		b, err := r.GetByte()
		if err != nil {
			return ErrPrematureEndOfFile
		}
		if b != want {
			return ErrBadSignature
		}
	}

	first, err := readChunkHeader(r)
	if err != nil {
		return ErrPrematureEndOfFile
	}
	if first.typ != chunkIHDR {
		return ErrInvalidFirstChunk
	}
	hdr, err := parseImageHeader(r)
	if err != nil {
		return err
	}
	if onHeader != nil {
		onHeader(hdr)
	}

	// Image data may be scattered over several IDAT chunks, split without
	// regard to scanline or even DEFLATE block boundaries. Consecutive
	// payloads are collected and decoded as one zlib stream.
	ctx := newDecodeContext(hdr, onScanline)
	var imageData []byte
	var sawIDAT bool

	decodeImageData := func() error {
		if !sawIDAT {
			return nil
		}
		frame := imageData
		imageData, sawIDAT = nil, false
		err := zlib.Decompress(bytestream.NewReader(frame), len(frame), ctx.processImageData)
		if err != nil {
			return errors.Join(ErrZlib, err)
		}
		return ctx.err
	}

	for !r.EOF() {
		c, err := readChunkHeader(r)
		if err != nil {
			return ErrPrematureEndOfFile
		}

		switch {
		case c.typ == chunkIHDR:
			return ErrMultipleIHDR

		case c.typ == chunkIDAT:
			payload, err := r.Slice(int(c.length))
			if err != nil {
				return ErrPrematureEndOfFile
			}
			imageData = append(imageData, payload...)
			sawIDAT = true
			r.Skip(chunkCRCSize)

		case c.typ == chunkIEND:
			r.Skip(chunkCRCSize)
			return decodeImageData()

		default:
			// The IDAT run ends at the first non-IDAT chunk.
			if err := decodeImageData(); err != nil {
				return err
			}
			if !c.typ.Ancillary() {
				return ErrUnsupportedCriticalChunk
			}
			c.skip(r)
		}
	}
	return decodeImageData()
}

// Image is a fully materialized decode result: the header plus all
// reconstructed scanlines back to back, Header.ScanlineLength() bytes
// per row.
type Image struct {
	Header ImageHeader
	Pixels []byte
}

// DecodeImage decodes the PNG in data into a single pixel buffer. It is
// the convenience counterpart of Decode for callers that want the whole
// image at once.
func DecodeImage(data []byte) (*Image, error) {
	var img Image
	err := Decode(data,
		func(hdr ImageHeader) {
			img.Header = hdr
			img.Pixels = make([]byte, 0, int(hdr.Height)*hdr.ScanlineLength())
		},
		func(line []byte) {
			img.Pixels = append(img.Pixels, line...)
		},
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

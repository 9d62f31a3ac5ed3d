package png

import "errors"

// Decode failures are sentinel values so callers can match them with
// errors.Is. Failures inside the compressed image data surface as ErrZlib
// joined with the lower-layer cause.
var (
	// ErrPrematureEndOfFile is returned when the file ends inside the
	// signature or a chunk.
	ErrPrematureEndOfFile = errors.New("png: premature end of file")
	// ErrBadSignature is returned when the file does not start with the
	// PNG signature.
	ErrBadSignature = errors.New("png: bad signature")
	// ErrInvalidFirstChunk is returned when the first chunk is not IHDR.
	ErrInvalidFirstChunk = errors.New("png: first chunk is not IHDR")
	// ErrMultipleIHDR is returned when a second IHDR chunk appears.
	ErrMultipleIHDR = errors.New("png: multiple IHDR chunks")
	// ErrInvalidWidth is returned when the width exceeds 2^31-1.
	ErrInvalidWidth = errors.New("png: invalid width")
	// ErrInvalidHeight is returned when the height exceeds 2^31-1.
	ErrInvalidHeight = errors.New("png: invalid height")
	// ErrInvalidColorTypeBitDepth is returned when the color type and bit
	// depth do not form a combination the PNG specification allows.
	ErrInvalidColorTypeBitDepth = errors.New("png: invalid color type and bit depth combination")
	// ErrUnsupportedCompressionMethod is returned when IHDR names a
	// compression method other than deflate.
	ErrUnsupportedCompressionMethod = errors.New("png: unsupported compression method")
	// ErrUnsupportedFilterMethod is returned when IHDR names a filter
	// method other than adaptive filtering.
	ErrUnsupportedFilterMethod = errors.New("png: unsupported filter method")
	// ErrUnsupportedInterlaceMethod is returned for interlaced images.
	ErrUnsupportedInterlaceMethod = errors.New("png: unsupported interlace method")
	// ErrUnsupportedPixelLayout is returned for layouts this decoder does
	// not reconstruct: indexed color, and bit depths below 8.
	ErrUnsupportedPixelLayout = errors.New("png: unsupported pixel layout")
	// ErrUnsupportedCriticalChunk is returned when an unknown chunk with
	// the critical bit is encountered.
	ErrUnsupportedCriticalChunk = errors.New("png: unsupported critical chunk")
	// ErrZlib is returned when the compressed image data cannot be
	// decoded; the underlying zlib or deflate error is joined to it.
	ErrZlib = errors.New("png: image data is corrupt")
	// ErrUnsupportedFilterType is returned when a scanline names a filter
	// type outside 0-4.
	ErrUnsupportedFilterType = errors.New("png: unsupported scanline filter type")
)

package png

import "github.com/llehouerou/go-png/internal/bytestream"

// PNG color types (PNG 1.2, section 4.1.1).
const (
	ColorTypeGrayscale      uint8 = 0
	ColorTypeTruecolor      uint8 = 2
	ColorTypePalette        uint8 = 3
	ColorTypeGrayscaleAlpha uint8 = 4
	ColorTypeTruecolorAlpha uint8 = 6
)

// ImageHeader is the decoded IHDR payload. It is handed to the header
// sink once validation passes, before any scanline is delivered.
type ImageHeader struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// samplesPerPixel returns the channel count of the color type.
func (h ImageHeader) samplesPerPixel() int {
	switch h.ColorType {
	case ColorTypeTruecolor:
		return 3
	case ColorTypeGrayscaleAlpha:
		return 2
	case ColorTypeTruecolorAlpha:
		return 4
	default:
		return 1
	}
}

// BytesPerPixel returns the size of one pixel in the reconstructed
// scanline. Valid for bit depths of 8 and 16; smaller depths are
// rejected at the header.
func (h ImageHeader) BytesPerPixel() int {
	return h.samplesPerPixel() * int(h.BitDepth) / 8
}

// HasAlpha reports whether pixels carry an alpha channel.
func (h ImageHeader) HasAlpha() bool {
	return h.ColorType == ColorTypeGrayscaleAlpha || h.ColorType == ColorTypeTruecolorAlpha
}

// ScanlineLength returns the length in bytes of one reconstructed
// scanline.
func (h ImageHeader) ScanlineLength() int {
	return int(h.Width) * h.BytesPerPixel()
}

const maxDimension = 1<<31 - 1

// validColorTypeBitDepth is the combination table of PNG 1.2,
// section 4.1.1.
func validColorTypeBitDepth(colorType, bitDepth uint8) bool {
	switch colorType {
	case ColorTypeGrayscale:
		return bitDepth == 1 || bitDepth == 2 || bitDepth == 4 || bitDepth == 8 || bitDepth == 16
	case ColorTypePalette:
		return bitDepth == 1 || bitDepth == 2 || bitDepth == 4 || bitDepth == 8
	case ColorTypeTruecolor, ColorTypeGrayscaleAlpha, ColorTypeTruecolorAlpha:
		return bitDepth == 8 || bitDepth == 16
	}
	return false
}

// parseImageHeader reads and validates the 13-byte IHDR payload and
// skips its CRC.
func parseImageHeader(r *bytestream.Reader) (ImageHeader, error) {
	var h ImageHeader

	fields, err := r.Slice(13)
	if err != nil {
		return h, ErrPrematureEndOfFile
	}
	h.Width = uint32(fields[0])<<24 | uint32(fields[1])<<16 | uint32(fields[2])<<8 | uint32(fields[3])
	h.Height = uint32(fields[4])<<24 | uint32(fields[5])<<16 | uint32(fields[6])<<8 | uint32(fields[7])
	h.BitDepth = fields[8]
	h.ColorType = fields[9]
	h.CompressionMethod = fields[10]
	h.FilterMethod = fields[11]
	h.InterlaceMethod = fields[12]

	if h.Width > maxDimension {
		return h, ErrInvalidWidth
	}
	if h.Height > maxDimension {
		return h, ErrInvalidHeight
	}
	if !validColorTypeBitDepth(h.ColorType, h.BitDepth) {
		return h, ErrInvalidColorTypeBitDepth
	}
	if h.CompressionMethod != 0 {
		return h, ErrUnsupportedCompressionMethod
	}
	if h.FilterMethod != 0 {
		return h, ErrUnsupportedFilterMethod
	}
	if h.InterlaceMethod != 0 {
		return h, ErrUnsupportedInterlaceMethod
	}
	// Legal PNG, but needs bit unpacking or a palette lookup, which the
	// scanline reconstructor does not do.
	if h.ColorType == ColorTypePalette || h.BitDepth < 8 {
		return h, ErrUnsupportedPixelLayout
	}

	r.Skip(chunkCRCSize)
	return h, nil
}

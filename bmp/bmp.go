// Package bmp serializes decoded PNG images as Windows bitmaps. It is
// the write side of the png-to-bmp conversion pipeline: a decoded image
// goes out as a BITMAPFILEHEADER, a 40-byte BITMAPINFOHEADER, and
// bottom-up BGR(A) pixel rows padded to four bytes.
//
// Structure layouts follow the wingdi BITMAPINFO documentation on MSDN.
package bmp

import (
	"encoding/binary"
	"errors"
	"io"

	png "github.com/llehouerou/go-png"
)

// ErrUnsupportedImage is returned for images the BMP pixel formats
// cannot carry.
var ErrUnsupportedImage = errors.New("bmp: image cannot be serialized as a bitmap")

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Write serializes img to w. Images without alpha become 24-bit bitmaps,
// images with alpha 32-bit ones. Grayscale samples are replicated across
// the color channels; 16-bit channels are reduced to their high byte.
func Write(w io.Writer, img *png.Image) error {
	hdr := img.Header
	switch hdr.ColorType {
	case png.ColorTypeGrayscale, png.ColorTypeTruecolor,
		png.ColorTypeGrayscaleAlpha, png.ColorTypeTruecolorAlpha:
	default:
		return ErrUnsupportedImage
	}

	width := int(hdr.Width)
	height := int(hdr.Height)
	outBPP := 24
	if hdr.HasAlpha() {
		outBPP = 32
	}
	outBytesPP := outBPP / 8

	rowLength := width * outBytesPP
	padding := (4 - rowLength%4) % 4
	fileSize := fileHeaderSize + infoHeaderSize + height*(rowLength+padding)

	var buf [fileHeaderSize + infoHeaderSize]byte
	le := binary.LittleEndian
	// BITMAPFILEHEADER
	buf[0], buf[1] = 'B', 'M'
	le.PutUint32(buf[2:], uint32(fileSize))
	le.PutUint32(buf[6:], 0) // reserved
	le.PutUint32(buf[10:], fileHeaderSize+infoHeaderSize)
	// BITMAPINFOHEADER
	le.PutUint32(buf[14:], infoHeaderSize)
	le.PutUint32(buf[18:], uint32(width))
	le.PutUint32(buf[22:], uint32(height))
	le.PutUint16(buf[26:], 1) // planes
	le.PutUint16(buf[28:], uint16(outBPP))
	le.PutUint32(buf[30:], 0) // compression (BI_RGB)
	le.PutUint32(buf[34:], 0) // image size (0 for BI_RGB)
	le.PutUint32(buf[38:], 0) // horizontal pixels-per-meter
	le.PutUint32(buf[42:], 0) // vertical pixels-per-meter
	le.PutUint32(buf[46:], 0) // colors used
	le.PutUint32(buf[50:], 0) // important colors
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	// Bitmap rows are stored bottom-up, colors as BGR(A).
	scanlineLen := hdr.ScanlineLength()
	row := make([]byte, rowLength+padding)
	for y := height - 1; y >= 0; y-- {
		line := img.Pixels[y*scanlineLen : (y+1)*scanlineLen]
		for x := 0; x < width; x++ {
			r, g, b, a := pixelAt(hdr, line, x)
			out := row[x*outBytesPP:]
			out[0], out[1], out[2] = b, g, r
			if outBPP == 32 {
				out[3] = a
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// pixelAt extracts pixel x of a reconstructed scanline as 8-bit RGBA.
// For 16-bit channels the high byte is the most significant sample byte,
// since PNG samples are big-endian.
func pixelAt(hdr png.ImageHeader, line []byte, x int) (r, g, b, a uint8) {
	step := int(hdr.BitDepth) / 8
	p := line[x*hdr.BytesPerPixel():]

	sample := func(i int) uint8 { return p[i*step] }

	switch hdr.ColorType {
	case png.ColorTypeGrayscale:
		v := sample(0)
		return v, v, v, 0xff
	case png.ColorTypeGrayscaleAlpha:
		v := sample(0)
		return v, v, v, sample(1)
	case png.ColorTypeTruecolor:
		return sample(0), sample(1), sample(2), 0xff
	default: // truecolor with alpha
		return sample(0), sample(1), sample(2), sample(3)
	}
}

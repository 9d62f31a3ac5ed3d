// Package png provides a pure Go, read-only PNG decoder.
//
// The decoder is self-contained: the DEFLATE decompressor (RFC 1951),
// the zlib framing around it (RFC 1950), and the per-scanline filter
// reconstruction are all implemented here, with no dependency on the
// standard library's compress or image packages.
//
// # Basic Usage
//
// To decode a PNG held in memory:
//
//	img, err := png.DecodeImage(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// img.Header describes the pixel layout, img.Pixels holds the
//	// reconstructed scanlines back to back.
//
// # Streaming API
//
// Decode delivers scanlines through caller-supplied sinks as they are
// reconstructed, so no full pixel buffer is built: the filter
// reconstruction keeps only two rows. The compressed image data and the
// decompressed stream are still held in memory in full:
//
//	err := png.Decode(data,
//	    func(hdr png.ImageHeader) { /* called once, before any row */ },
//	    func(line []byte) { /* called once per row, in order */ },
//	)
//
// The line slice is borrowed: it is only valid for the duration of the
// sink call and its buffer is reused for later rows.
//
// # Supported Images
//
// Grayscale, truecolor, grayscale+alpha, and truecolor+alpha images with
// 8- or 16-bit channels, non-interlaced. Indexed-color images and bit
// depths below 8 are rejected at the header, as are Adam7-interlaced
// files. Ancillary chunks are skipped; unknown critical chunks abort the
// decode.
//
// # Thread Safety
//
// Decoding holds no global state. Distinct calls may run concurrently;
// a single decode is synchronous and must not be re-entered from its own
// sinks.
package png

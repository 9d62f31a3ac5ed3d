package png

// Scanline filter types (PNG 1.2, section 6.2).
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// paethPredictor picks the neighbor (left, above, upper-left) closest to
// the linear estimate a+b-c (PNG 1.2, section 6.6). Ties prefer left,
// then above.
func paethPredictor(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// decodeContext reverses the per-scanline filters on the decompressed
// IDAT stream. It lives from IHDR acceptance until IEND or a fatal
// error.
//
// Filtered scanlines do not align with the chunks the decompressor
// emits, so pending carries a partial scanline between calls. Only the
// two most recent reconstructed rows are kept: the current one and the
// prior one the filters predict from.
type decodeContext struct {
	bpp         int
	scanlineLen int

	// Ring of the two most recent reconstructed scanlines.
	scanlines [2][]byte
	// Partial filtered scanline carried across decompressed chunks;
	// holds at most scanlineLen+1 bytes (filter byte plus data).
	pending []byte
	line    int

	sink ScanlineFunc

	// First failure; once set, further input is dropped and the sink is
	// never called again.
	err error
}

func newDecodeContext(h ImageHeader, sink ScanlineFunc) *decodeContext {
	d := &decodeContext{
		bpp:         h.BytesPerPixel(),
		scanlineLen: h.ScanlineLength(),
		sink:        sink,
	}
	for i := range d.scanlines {
		d.scanlines[i] = make([]byte, d.scanlineLen)
	}
	return d
}

// processImageData consumes a chunk of the decompressed stream,
// reconstructing and delivering every complete scanline it holds.
func (d *decodeContext) processImageData(data []byte) {
	if d.err != nil {
		return
	}
	filteredLen := d.scanlineLen + 1

	// Top up the pending partial scanline first.
	if len(d.pending) > 0 {
		take := min(filteredLen-len(d.pending), len(data))
		d.pending = append(d.pending, data[:take]...)
		data = data[take:]
		if len(d.pending) < filteredLen {
			return
		}
		d.processScanline(d.pending)
		d.pending = d.pending[:0]
	}

	// Whole scanlines straight out of the chunk.
	for d.err == nil && len(data) >= filteredLen {
		d.processScanline(data[:filteredLen])
		data = data[filteredLen:]
	}

	// Stash the remainder for the next chunk.
	if d.err == nil {
		d.pending = append(d.pending, data...)
	}
}

// processScanline reverses the filter of one complete filtered scanline
// (filter byte plus scanlineLen data bytes) and hands the reconstructed
// row to the sink.
func (d *decodeContext) processScanline(filtered []byte) {
	filterType := filtered[0]
	in := filtered[1:]

	cur := d.scanlines[d.line%2]
	prev := d.scanlines[(d.line+1)%2]

	// left and upperLeft read already-reconstructed bytes one pixel back;
	// columns before the first pixel predict from zero.
	left := func(x int) uint8 {
		if x < d.bpp {
			return 0
		}
		return cur[x-d.bpp]
	}
	upperLeft := func(x int) uint8 {
		if x < d.bpp {
			return 0
		}
		return prev[x-d.bpp]
	}

	switch filterType {
	case filterNone:
		copy(cur, in)
	case filterSub:
		for x := range in {
			cur[x] = in[x] + left(x)
		}
	case filterUp:
		for x := range in {
			cur[x] = in[x] + prev[x]
		}
	case filterAverage:
		for x := range in {
			// The sum must not wrap before the divide.
			cur[x] = in[x] + uint8((int(left(x))+int(prev[x]))/2)
		}
	case filterPaeth:
		for x := range in {
			cur[x] = in[x] + paethPredictor(left(x), prev[x], upperLeft(x))
		}
	default:
		d.err = ErrUnsupportedFilterType
		return
	}

	if d.sink != nil {
		d.sink(cur)
	}
	d.line++
}

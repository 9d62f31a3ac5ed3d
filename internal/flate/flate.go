// Package flate decompresses a DEFLATE stream (RFC 1951). The decoder is
// read-only and streaming: each completed block's bytes are handed to a
// caller-supplied sink, while the cumulative output is retained so that
// back-references can reach across block boundaries.
package flate

import (
	"errors"

	"github.com/llehouerou/go-png/internal/bits"
	"github.com/llehouerou/go-png/internal/bytestream"
	"github.com/llehouerou/go-png/internal/huffman"
)

var (
	// ErrEndOfStream is returned when the bit stream ends mid-block.
	ErrEndOfStream = errors.New("flate: unexpected end of stream")
	// ErrInvalidBlockType is returned for the reserved block type 11.
	ErrInvalidBlockType = errors.New("flate: reserved block type")
	// ErrLengthCorrupt is returned when a stored block's NLEN is not the
	// complement of its LEN.
	ErrLengthCorrupt = errors.New("flate: stored block length check failed")
	// ErrInvalidDynamicReference is returned when a dynamic block's
	// code-length sequence starts with a repeat of the previous length.
	ErrInvalidDynamicReference = errors.New("flate: length repeat with no previous length")
	// ErrCorruptDistance is returned when a back-reference reaches before
	// the start of the output.
	ErrCorruptDistance = errors.New("flate: distance exceeds output size")
	// ErrInvalidSymbol is returned for literal/length or distance symbols
	// outside the ranges RFC 1951 defines.
	ErrInvalidSymbol = errors.New("flate: symbol out of range")

	// ErrCorruptSymbol is returned when the bit stream matches no Huffman
	// code of the active tree.
	ErrCorruptSymbol = huffman.ErrCorruptSymbol
)

const (
	endOfBlockSymbol  = 256
	firstLengthSymbol = 257
	lastLengthSymbol  = 285
)

// streamErr maps a bit-stream failure to ErrEndOfStream and passes every
// other error through.
func streamErr(err error) error {
	if errors.Is(err, bytestream.ErrEOF) {
		return ErrEndOfStream
	}
	return err
}

// Decompress reads DEFLATE blocks from br until a block flagged final
// completes. After each block, the bytes it produced are passed to emit
// (which may be nil). Output ordering follows the stream; back-references
// resolve against everything emitted so far.
func Decompress(br *bits.Reader, emit func(block []byte)) error {
	var out []byte
	for {
		bfinal, err := br.GetBit()
		if err != nil {
			return ErrEndOfStream
		}
		btype, err := br.GetDataBits(2)
		if err != nil {
			return ErrEndOfStream
		}

		start := len(out)
		switch btype {
		case 0: // stored
			out, err = storedBlock(br, out)
		case 1: // fixed Huffman trees
			out, err = huffmanBlock(br, fixedLengthTree(), fixedDistanceTree(), out)
		case 2: // dynamic Huffman trees
			var lenTree, distTree *huffman.Tree
			lenTree, distTree, err = dynamicTrees(br)
			if err == nil {
				out, err = huffmanBlock(br, lenTree, distTree, out)
			}
		default:
			return ErrInvalidBlockType
		}
		if err != nil {
			return err
		}

		if emit != nil {
			emit(out[start:])
		}
		if bfinal == 1 {
			return nil
		}
	}
}

// storedBlock copies a BTYPE=00 block: skip to the byte boundary, read
// LEN and its one's complement NLEN (both little-endian), then LEN
// literal bytes.
func storedBlock(br *bits.Reader, out []byte) ([]byte, error) {
	br.AlignToByte()

	length, err := br.GetDataBits(16)
	if err != nil {
		return out, ErrEndOfStream
	}
	nlength, err := br.GetDataBits(16)
	if err != nil {
		return out, ErrEndOfStream
	}
	if ^length&0xffff != nlength {
		return out, ErrLengthCorrupt
	}

	for n := length; n > 0; n-- {
		b, err := br.GetDataBits(8)
		if err != nil {
			return out, ErrEndOfStream
		}
		out = append(out, byte(b))
	}
	return out, nil
}

// huffmanBlock decodes literal/length symbols until end-of-block,
// appending literals and expanding back-references against the cumulative
// output.
func huffmanBlock(br *bits.Reader, lenTree, distTree *huffman.Tree, out []byte) ([]byte, error) {
	for {
		sym, err := lenTree.DecodeSymbol(br)
		if err != nil {
			return out, streamErr(err)
		}

		switch {
		case sym < endOfBlockSymbol:
			out = append(out, byte(sym))

		case sym == endOfBlockSymbol:
			return out, nil

		case sym <= lastLengthSymbol:
			n := sym - firstLengthSymbol
			extra, err := br.GetDataBits(lengthExtra[n])
			if err != nil {
				return out, ErrEndOfStream
			}
			length := lengthBase[n] + int(extra)

			distSym, err := distTree.DecodeSymbol(br)
			if err != nil {
				return out, streamErr(err)
			}
			if distSym >= len(distBase) {
				return out, ErrInvalidSymbol
			}
			extra, err = br.GetDataBits(distExtra[distSym])
			if err != nil {
				return out, ErrEndOfStream
			}
			dist := distBase[distSym] + int(extra)

			if dist > len(out) {
				return out, ErrCorruptDistance
			}
			// Byte-at-a-time so an overlapping reference re-reads bytes
			// this copy just produced.
			pos := len(out) - dist
			for i := 0; i < length; i++ {
				out = append(out, out[pos])
				pos++
			}

		default:
			return out, ErrInvalidSymbol
		}
	}
}

// dynamicTrees reads the compressed code-length description of a
// BTYPE=10 block (RFC 1951, section 3.2.7) and builds its literal/length
// and distance trees.
func dynamicTrees(br *bits.Reader) (lenTree, distTree *huffman.Tree, err error) {
	hlit, err := br.GetDataBits(5)
	if err != nil {
		return nil, nil, ErrEndOfStream
	}
	hdist, err := br.GetDataBits(5)
	if err != nil {
		return nil, nil, ErrEndOfStream
	}
	hclen, err := br.GetDataBits(4)
	if err != nil {
		return nil, nil, ErrEndOfStream
	}
	numLit := int(hlit) + 257
	numDist := int(hdist) + 1
	numCodeLen := int(hclen) + 4

	// The code-length code's own lengths, stored in a fixed scrambled
	// order; positions beyond HCLEN stay 0.
	codeLengths := make([]int, len(codeLengthOrder))
	for n := 0; n < numCodeLen; n++ {
		l, err := br.GetDataBits(3)
		if err != nil {
			return nil, nil, ErrEndOfStream
		}
		codeLengths[codeLengthOrder[n]] = int(l)
	}
	codeTree := huffman.Build(codeLengths)

	// Decode the run-length-compressed lengths of both trees as one
	// sequence, then split it at numLit.
	lengths := make([]int, 0, numLit+numDist)
	for len(lengths) < numLit+numDist {
		sym, err := codeTree.DecodeSymbol(br)
		if err != nil {
			return nil, nil, streamErr(err)
		}
		if sym <= 15 {
			lengths = append(lengths, sym)
			continue
		}

		repeat := 0
		value := 0
		switch sym {
		case 16: // copy the previous length 3-6 times
			if len(lengths) == 0 {
				return nil, nil, ErrInvalidDynamicReference
			}
			value = lengths[len(lengths)-1]
			extra, err := br.GetDataBits(2)
			if err != nil {
				return nil, nil, ErrEndOfStream
			}
			repeat = int(extra) + 3
		case 17: // repeat length 0 for 3-10 times
			extra, err := br.GetDataBits(3)
			if err != nil {
				return nil, nil, ErrEndOfStream
			}
			repeat = int(extra) + 3
		case 18: // repeat length 0 for 11-138 times
			extra, err := br.GetDataBits(7)
			if err != nil {
				return nil, nil, ErrEndOfStream
			}
			repeat = int(extra) + 11
		}
		for i := 0; i < repeat; i++ {
			lengths = append(lengths, value)
		}
	}

	return huffman.Build(lengths[:numLit]), huffman.Build(lengths[numLit:]), nil
}

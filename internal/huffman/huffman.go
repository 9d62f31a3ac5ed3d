// Package huffman builds canonical Huffman codes from code lengths and
// decodes symbols from a bit stream, as described in RFC 1951,
// section 3.2.2. Trees are plain tables: per-symbol lengths and codes
// plus a (length, code) index. There is no node structure.
package huffman

import (
	"errors"

	"github.com/llehouerou/go-png/internal/bits"
)

// MaxBits is the longest code length DEFLATE permits.
const MaxBits = 15

// ErrCorruptSymbol is returned when the buffered bits match no code of
// any length present in the tree.
var ErrCorruptSymbol = errors.New("huffman: bits match no code in the tree")

// Tree is a canonical prefix code. Symbols with length 0 do not
// participate in the code.
type Tree struct {
	lengths []int
	codes   []int
	minBits int
	maxBits int
	// lookup maps length<<16|code to the symbol it decodes to.
	lookup map[uint32]int
}

func lookupKey(length int, code uint32) uint32 {
	return uint32(length)<<16 | code
}

// Build constructs the unique canonical tree for the given per-symbol
// code lengths. Symbols of equal length receive consecutive codes in
// symbol order; the first code of each length is derived from the counts
// of all shorter lengths.
func Build(lengths []int) *Tree {
	t := &Tree{
		lengths: lengths,
		codes:   make([]int, len(lengths)),
		minBits: MaxBits + 1,
		lookup:  make(map[uint32]int),
	}

	// Count the number of codes per length.
	var count [MaxBits + 1]int
	for _, l := range lengths {
		count[l]++
		if l != 0 {
			t.minBits = min(t.minBits, l)
			t.maxBits = max(t.maxBits, l)
		}
	}
	if t.maxBits == 0 {
		// No symbols carry a code.
		t.minBits = 0
		return t
	}

	// Smallest code value for each length.
	var nextCode [MaxBits + 1]int
	code := 0
	for l := 1; l <= MaxBits; l++ {
		code = (code + count[l-1]) << 1
		nextCode[l] = code
	}

	// Assign consecutive codes to the symbols of each length.
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c := nextCode[l] & (1<<l - 1)
		nextCode[l]++
		t.codes[sym] = c
		t.lookup[lookupKey(l, uint32(c))] = sym
	}
	return t
}

// MinBits returns the shortest code length present.
func (t *Tree) MinBits() int { return t.minBits }

// MaxBits returns the longest code length present.
func (t *Tree) MaxBits() int { return t.maxBits }

// Length returns the code length of sym, 0 if sym has no code.
func (t *Tree) Length(sym int) int { return t.lengths[sym] }

// Code returns the numeric code assigned to sym.
func (t *Tree) Code(sym int) int { return t.codes[sym] }

// DecodeSymbol reads Huffman bits from r until they uniquely identify a
// symbol. It starts with the minimum code length and extends the code one
// bit at a time; if the maximum length is reached without a match the
// stream is corrupt.
func (t *Tree) DecodeSymbol(r *bits.Reader) (int, error) {
	if t.maxBits == 0 {
		return 0, ErrCorruptSymbol
	}
	curBits := t.minBits
	code, err := r.GetHuffmanBits(uint(curBits))
	if err != nil {
		return 0, err
	}
	for {
		if sym, ok := t.lookup[lookupKey(curBits, code)]; ok {
			return sym, nil
		}
		if curBits == t.maxBits {
			return 0, ErrCorruptSymbol
		}
		bit, err := r.GetBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | bit
		curBits++
	}
}

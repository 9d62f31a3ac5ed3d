package flate

import (
	"sync"

	"github.com/llehouerou/go-png/internal/huffman"
)

// Length and distance tables from RFC 1951, section 3.2.5. A length
// symbol 257+n stands for lengthBase[n] plus lengthExtra[n] extra bits;
// a distance symbol d stands for distBase[d] plus distExtra[d] extra
// bits.
var (
	lengthBase = [29]int{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [29]uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}

	distBase = [30]int{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
		8193, 12289, 16385, 24577,
	}
	distExtra = [30]uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// codeLengthOrder is the order in which the code-length-code lengths are
// stored in a dynamic block header (RFC 1951, section 3.2.7).
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// Fixed Huffman trees for BTYPE=01 blocks (RFC 1951, section 3.2.6).
var (
	fixedLengthTree = sync.OnceValue(func() *huffman.Tree {
		lengths := make([]int, 288)
		for n := 0; n <= 143; n++ {
			lengths[n] = 8
		}
		for n := 144; n <= 255; n++ {
			lengths[n] = 9
		}
		for n := 256; n <= 279; n++ {
			lengths[n] = 7
		}
		for n := 280; n <= 287; n++ {
			lengths[n] = 8
		}
		return huffman.Build(lengths)
	})

	fixedDistanceTree = sync.OnceValue(func() *huffman.Tree {
		lengths := make([]int, 30)
		for n := range lengths {
			lengths[n] = 5
		}
		return huffman.Build(lengths)
	})
)

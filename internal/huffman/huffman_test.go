package huffman

import (
	"errors"
	"testing"

	"github.com/llehouerou/go-png/internal/bits"
	"github.com/llehouerou/go-png/internal/bytestream"
)

// codeWriter packs bits into bytes the way DEFLATE stores them:
// LSB-first within each byte. Huffman codes are pushed MSB-first, one
// bit at a time, mirroring how the decoder consumes them.
type codeWriter struct {
	buf   []byte
	acc   uint32
	nbits uint
}

func (w *codeWriter) writeBit(b uint32) {
	w.acc |= (b & 1) << w.nbits
	w.nbits++
	if w.nbits == 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc, w.nbits = 0, 0
	}
}

func (w *codeWriter) writeCode(code, length int) {
	for i := length - 1; i >= 0; i-- {
		w.writeBit(uint32(code>>i) & 1)
	}
}

func (w *codeWriter) bytes() []byte {
	if w.nbits > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc, w.nbits = 0, 0
	}
	return w.buf
}

func reader(data []byte) *bits.Reader {
	return bits.NewReader(bytestream.NewReader(data))
}

func TestBuild_CanonicalCodes(t *testing.T) {
	// RFC 1951, section 3.2.2 example: lengths (3,3,3,3,3,2,4,4) for
	// symbols A-H yield these codes.
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	wantCodes := []int{0b010, 0b011, 0b100, 0b101, 0b110, 0b00, 0b1110, 0b1111}

	tree := Build(lengths)
	if tree.MinBits() != 2 || tree.MaxBits() != 4 {
		t.Fatalf("min/max bits = %d/%d, want 2/4", tree.MinBits(), tree.MaxBits())
	}
	for sym, want := range wantCodes {
		if got := tree.Code(sym); got != want {
			t.Errorf("Code(%d) = %b, want %b", sym, got, want)
		}
		if got := tree.Length(sym); got != lengths[sym] {
			t.Errorf("Length(%d) = %d, want %d", sym, got, lengths[sym])
		}
	}
}

func TestBuild_ConsecutiveCodesPerLength(t *testing.T) {
	// Symbols of equal length must receive consecutive codes in symbol
	// order.
	lengths := []int{2, 2, 3, 3, 3, 3}
	tree := Build(lengths)

	if tree.Code(1) != tree.Code(0)+1 {
		t.Errorf("codes of length 2 not consecutive: %b, %b", tree.Code(0), tree.Code(1))
	}
	for sym := 3; sym <= 5; sym++ {
		if tree.Code(sym) != tree.Code(sym-1)+1 {
			t.Errorf("codes of length 3 not consecutive at symbol %d", sym)
		}
	}
	// First code of length 3 = (first code of length 2 + count) << 1.
	if want := (tree.Code(0) + 2) << 1; tree.Code(2) != want {
		t.Errorf("first length-3 code = %b, want %b", tree.Code(2), want)
	}
}

func TestBuild_SkippedSymbols(t *testing.T) {
	// Length 0 means the symbol has no code at all.
	lengths := []int{0, 1, 0, 1}
	tree := Build(lengths)

	if tree.MinBits() != 1 || tree.MaxBits() != 1 {
		t.Fatalf("min/max bits = %d/%d, want 1/1", tree.MinBits(), tree.MaxBits())
	}
	if tree.Code(1) != 0 || tree.Code(3) != 1 {
		t.Errorf("codes = %d, %d, want 0, 1", tree.Code(1), tree.Code(3))
	}
}

func TestDecodeSymbol_Roundtrip(t *testing.T) {
	// Encoding every symbol with its assigned (length, code) and
	// decoding it back must be the identity.
	lengths := []int{3, 3, 3, 3, 3, 2, 4, 4}
	tree := Build(lengths)

	var w codeWriter
	for sym := range lengths {
		w.writeCode(tree.Code(sym), tree.Length(sym))
	}

	r := reader(w.bytes())
	for sym := range lengths {
		got, err := tree.DecodeSymbol(r)
		if err != nil {
			t.Fatalf("symbol %d: DecodeSymbol() error = %v", sym, err)
		}
		if got != sym {
			t.Errorf("DecodeSymbol() = %d, want %d", got, sym)
		}
	}
}

func TestDecodeSymbol_CorruptCode(t *testing.T) {
	// With only the length-1 code 0 assigned, a stream of ones can never
	// match.
	tree := Build([]int{1})

	r := reader([]byte{0xff, 0xff})
	if _, err := tree.DecodeSymbol(r); !errors.Is(err, ErrCorruptSymbol) {
		t.Errorf("DecodeSymbol() error = %v, want ErrCorruptSymbol", err)
	}
}

func TestDecodeSymbol_EmptyTree(t *testing.T) {
	tree := Build([]int{0, 0, 0})

	r := reader([]byte{0x00})
	if _, err := tree.DecodeSymbol(r); !errors.Is(err, ErrCorruptSymbol) {
		t.Errorf("DecodeSymbol() error = %v, want ErrCorruptSymbol", err)
	}
}

func TestDecodeSymbol_EndOfStream(t *testing.T) {
	tree := Build([]int{4, 4})

	r := reader(nil)
	if _, err := tree.DecodeSymbol(r); !errors.Is(err, bytestream.ErrEOF) {
		t.Errorf("DecodeSymbol() error = %v, want bytestream.ErrEOF", err)
	}
}

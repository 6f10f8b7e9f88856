package encoding

import (
	"testing"
)

func intersectionStringArrays(A []string, B []string) []string {
	intersection := make([]string, 0)
	for i := 0; i < len(A); i++ {
		for j := 0; j < len(B); j++ {
			if A[i] == B[j] {
				intersection = append(intersection, A[i])
			}
		}
	}
	return intersection
}

var lookupChar = map[string][]string{
	"A": {"A"},
	"C": {"C"},
	"G": {"G"},
	"T": {"T"},
	"R": {"A", "G"},
	"Y": {"C", "T"},
	"S": {"G", "C"},
	"W": {"A", "T"},
	"K": {"G", "T"},
	"M": {"A", "C"},
	"B": {"C", "G", "T"},
	"D": {"A", "G", "T"},
	"H": {"A", "C", "T"},
	"V": {"A", "C", "G"},
	"N": {"A", "C", "G", "T"},
	"?": {"A", "C", "G", "T"},
	"-": {"A", "C", "G", "T"},
}

func TestEncoding(t *testing.T) {
	nucs := []string{"A", "G", "C", "T", "R", "M", "W", "S", "K", "Y", "V", "H", "D", "B", "N", "-", "?"}
	lookupByte := MakeByteDict()

	for i := 0; i < len(nucs); i++ {
		for j := 0; j < len(nucs); j++ {
			nuc1 := nucs[i]
			nuc2 := nucs[j]

			byte1 := lookupByte[[]rune(nuc1)[0]]
			byte2 := lookupByte[[]rune(nuc2)[0]]

			byteDifferent := Different(byte1, byte2)
			byteSame := IsUnambiguous(byte1) && byte1 == byte2

			nucDifferent := len(intersectionStringArrays(lookupChar[nuc1], lookupChar[nuc2])) == 0
			nucSame := len(intersectionStringArrays([]string{nuc1}, []string{"A", "C", "G", "T"})) == 1 && nuc1 == nuc2

			if byteDifferent != nucDifferent || byteSame != nucSame {
				t.Errorf("problem in encoding test: %s %s", nuc1, nuc2)
			}
		}
	}
}

func TestBreadth(t *testing.T) {
	lookupByte := MakeByteDict()
	for nuc, bases := range lookupChar {
		if got := Breadth(lookupByte[[]rune(nuc)[0]]); got != len(bases) {
			t.Errorf("Breadth(%s) = %d, want %d", nuc, got, len(bases))
		}
	}
}

func TestComplement(t *testing.T) {
	pairs := map[string]string{
		"A": "T", "T": "A", "G": "C", "C": "G",
		"R": "Y", "Y": "R", "S": "S", "W": "W",
		"K": "M", "M": "K", "B": "V", "V": "B",
		"D": "H", "H": "D", "N": "N",
	}
	byteDict := MakeByteDict()
	nucDict := MakeNucDict()
	for in, want := range pairs {
		got := nucDict[Complement(byteDict[[]rune(in)[0]])]
		if got != want {
			t.Errorf("Complement(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestEncodingArrayCaseInsensitive(t *testing.T) {
	EA := MakeEncodingArray()
	for _, c := range []byte("ACGTRYSWKMBDHVN") {
		if EA[c] == 0 || EA[c] != EA[c+'a'-'A'] {
			t.Errorf("encoding array mismatch for %c", c)
		}
	}
	if EA['X'] != 0 {
		t.Errorf("X should not be encoded")
	}
}

// Package encoding implements the (modified) bit-level coding scheme for
// IUPAC nucleotide codes developed by Emmanuel Paradis:
// http://ape-package.ird.fr/misc/BitLevelCodingScheme.html
//
// The high nibble of each code is the set of unambiguous bases the symbol
// stands for (A=8, G=4, C=2, T=1). Bit 3 of the low nibble marks a known
// unambiguous base.
package encoding

import "math/bits"

// Bit-level codes for every IUPAC symbol plus gap and unknown.
const (
	A   uint8 = 136
	G   uint8 = 72
	C   uint8 = 40
	T   uint8 = 24
	R   uint8 = 192
	M   uint8 = 160
	W   uint8 = 144
	S   uint8 = 96
	K   uint8 = 80
	Y   uint8 = 48
	V   uint8 = 224
	H   uint8 = 176
	D   uint8 = 208
	B   uint8 = 112
	N   uint8 = 240
	Gap uint8 = 244
	Unk uint8 = 242
)

var symbols = [...]struct {
	sym  byte
	code uint8
}{
	{'A', A}, {'G', G}, {'C', C}, {'T', T},
	{'R', R}, {'M', M}, {'W', W}, {'S', S}, {'K', K}, {'Y', Y},
	{'V', V}, {'H', H}, {'D', D}, {'B', B}, {'N', N},
	{'-', Gap}, {'?', Unk},
}

// MakeByteDict is a map from the rune representation of IUPAC nucleotide
// codes to their bit-level code. Lower case symbols are not included.
func MakeByteDict() map[rune]uint8 {
	byteMap := make(map[rune]uint8, len(symbols))
	for _, s := range symbols {
		byteMap[rune(s.sym)] = s.code
	}
	return byteMap
}

// MakeEncodingArray is as MakeByteDict but indexed by the byte itself and
// case-insensitive. Unknown bytes map to 0.
func MakeEncodingArray() [256]uint8 {
	var byteArray [256]uint8
	for _, s := range symbols {
		byteArray[s.sym] = s.code
		if s.sym >= 'A' && s.sym <= 'Z' {
			byteArray[s.sym+'a'-'A'] = s.code
		}
	}
	return byteArray
}

// MakeNucDict maps from the bit-level code of nucleotides to their IUPAC code
func MakeNucDict() map[uint8]string {
	nucMap := make(map[uint8]string, len(symbols))
	for _, s := range symbols {
		nucMap[s.code] = string(s.sym)
	}
	return nucMap
}

// MakeScoreDict is a map from bit-level codes to an integer for how
// unambiguous they are, calculated as 12 * 1/possible real nucleotides.
// E.g. an 'A' scores 12, but an 'N' (A, C, G or T) scores 3.
func MakeScoreDict() map[uint8]int {
	scoreMap := make(map[uint8]int, len(symbols))
	for _, s := range symbols {
		scoreMap[s.code] = 12 / Breadth(s.code)
	}
	return scoreMap
}

// BaseSet returns the set of unambiguous bases a code stands for as a
// 4-bit mask: A=8, G=4, C=2, T=1.
func BaseSet(code uint8) uint8 {
	return code >> 4
}

// Breadth is the number of unambiguous bases a code stands for.
func Breadth(code uint8) int {
	return bits.OnesCount8(BaseSet(code))
}

// IsUnambiguous reports whether code is exactly one of A, C, G or T.
func IsUnambiguous(code uint8) bool {
	return code&8 == 8
}

// Complement returns the code of the complementary symbol. Reversing the
// base set nibble swaps A<->T and G<->C.
func Complement(code uint8) uint8 {
	set := bits.Reverse8(BaseSet(code)) >> 4
	for _, s := range symbols {
		if BaseSet(s.code) == set && s.code != Gap && s.code != Unk {
			return s.code
		}
	}
	return code
}

// Different reports whether two codes share no possible base.
func Different(a, b uint8) bool {
	return (a & b) < 16
}

// Package alphabet provides the symbol/code mappings for nucleotide and
// amino acid sequences, including ambiguity codes (wildcards), and the
// mapping between codons and amino acids
package alphabet

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// NoCode is returned by lookups for symbols outside an alphabet
const NoCode byte = 0xff

var (
	errUnknownAlphabet = errors.New("unknown alphabet")
	errTooManyBasic    = errors.New("alphabets support at most 64 basic codes")
)

// A Wildcard is the set of codes a symbol can match. Basic codes are
// wildcards which match only themselves.
type Wildcard struct {
	Symbol   byte
	Code     byte
	basicSet uint64
	basic    []byte
	matching []byte
}

// BasicSize is the number of basic (unambiguous) codes this wildcard stands for
func (w Wildcard) BasicSize() int { return len(w.basic) }

// BasicMatchingCode returns the i-th basic code this wildcard stands for
func (w Wildcard) BasicMatchingCode(i int) byte { return w.basic[i] }

// Size is the number of codes (basic or not) matched by this wildcard: every
// code whose own basic set is a subset of this wildcard's basic set
func (w Wildcard) Size() int { return len(w.matching) }

// MatchingCode returns the i-th code matched by this wildcard
func (w Wildcard) MatchingCode(i int) byte { return w.matching[i] }

// IsBasic reports whether the wildcard is a single unambiguous code
func (w Wildcard) IsBasic() bool { return len(w.basic) == 1 && w.basic[0] == w.Code }

// Alphabet maps symbols to small integer codes. Basic codes are the
// contiguous prefix [0, BasicSize()).
type Alphabet struct {
	name       string
	basicSize  int
	symbols    []byte
	codes      [256]byte
	wildcards  []Wildcard
	bySet      map[uint64]byte
	complement []byte
}

// newAlphabet builds an alphabet from its basic symbols and a map from each
// ambiguity symbol to the basic symbols it stands for
func newAlphabet(name, basic string, ambiguous []string) (*Alphabet, error) {
	if len(basic) > 64 {
		return nil, errTooManyBasic
	}
	a := &Alphabet{name: name, basicSize: len(basic), bySet: make(map[uint64]byte)}
	for i := range a.codes {
		a.codes[i] = NoCode
	}

	sets := make([]uint64, 0, len(basic)+len(ambiguous))
	add := func(sym byte, set uint64) error {
		if a.codes[sym] != NoCode {
			return fmt.Errorf("duplicate symbol %q in %s alphabet", sym, name)
		}
		code := byte(len(a.symbols))
		a.symbols = append(a.symbols, sym)
		a.codes[sym] = code
		if sym >= 'A' && sym <= 'Z' {
			a.codes[sym+'a'-'A'] = code
		}
		sets = append(sets, set)
		if _, ok := a.bySet[set]; !ok {
			a.bySet[set] = code
		}
		return nil
	}

	for i := 0; i < len(basic); i++ {
		if err := add(basic[i], 1<<uint(i)); err != nil {
			return nil, err
		}
	}
	for _, def := range ambiguous {
		// def is "<symbol><basic symbols...>", e.g. "RAG"
		var set uint64
		for i := 1; i < len(def); i++ {
			idx := strings.IndexByte(basic, def[i])
			if idx < 0 {
				return nil, fmt.Errorf("wildcard %q refers to unknown symbol %q", def[0], def[i])
			}
			set |= 1 << uint(idx)
		}
		if set == 0 {
			return nil, fmt.Errorf("wildcard %q matches nothing", def[0])
		}
		if err := add(def[0], set); err != nil {
			return nil, err
		}
	}

	a.wildcards = make([]Wildcard, len(sets))
	for code, set := range sets {
		w := Wildcard{Symbol: a.symbols[code], Code: byte(code), basicSet: set}
		for b := 0; b < a.basicSize; b++ {
			if set&(1<<uint(b)) != 0 {
				w.basic = append(w.basic, byte(b))
			}
		}
		for other, otherSet := range sets {
			if otherSet&^set == 0 {
				w.matching = append(w.matching, byte(other))
			}
		}
		a.wildcards[code] = w
	}

	return a, nil
}

func mustAlphabet(a *Alphabet, err error) *Alphabet {
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the alphabet's name
func (a *Alphabet) Name() string { return a.name }

// String implements fmt.Stringer
func (a *Alphabet) String() string { return a.name }

// Size is the total number of codes, wildcards included
func (a *Alphabet) Size() int { return len(a.symbols) }

// BasicSize is the number of unambiguous codes
func (a *Alphabet) BasicSize() int { return a.basicSize }

// SymbolToCode converts a (case-insensitive) symbol to its code
func (a *Alphabet) SymbolToCode(sym byte) (byte, bool) {
	code := a.codes[sym]
	return code, code != NoCode
}

// CodeToSymbol converts a code to its upper case symbol
func (a *Alphabet) CodeToSymbol(code byte) byte { return a.symbols[code] }

// CodeToWildcard returns the matching set of a code
func (a *Alphabet) CodeToWildcard(code byte) Wildcard { return a.wildcards[code] }

// IsWildcard reports whether code is not a basic code
func (a *Alphabet) IsWildcard(code byte) bool { return int(code) >= a.basicSize }

// CodeForBasicSet returns the code whose basic set is exactly set (bit i set
// for basic code i), if the alphabet has one
func (a *Alphabet) CodeForBasicSet(set uint64) (byte, bool) {
	code, ok := a.bySet[set]
	return code, ok
}

// BasicSet returns the basic codes a code stands for as a bit mask
func (a *Alphabet) BasicSet(code byte) uint64 { return a.wildcards[code].basicSet }

// BasicSetSize is the number of basic codes in a bit mask returned by BasicSet
func BasicSetSize(set uint64) int { return bits.OnesCount64(set) }

// HasComplement reports whether codes of this alphabet can be complemented
func (a *Alphabet) HasComplement() bool { return a.complement != nil }

// Complement returns the complementary code. It is only meaningful when
// HasComplement is true, otherwise the code is returned unchanged.
func (a *Alphabet) Complement(code byte) byte {
	if a.complement == nil {
		return code
	}
	return a.complement[code]
}

// ByName looks up one of the built-in alphabets
func ByName(name string) (*Alphabet, error) {
	switch strings.ToLower(name) {
	case "nucleotide", "nt", "dna", "nuc":
		return Nucleotide, nil
	case "aminoacid", "aa", "protein", "amino-acid":
		return AminoAcid, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownAlphabet, name)
}

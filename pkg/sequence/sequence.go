// Package sequence provides immutable code vectors over an alphabet
package sequence

import (
	"errors"
	"fmt"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
)

var (
	errNoComplement = errors.New("alphabet has no complement")
	errBadFrame     = errors.New("reading frame must be 0, 1 or 2")
	errOutOfRange   = errors.New("range out of bounds")
)

// Sequence is an immutable sequence of alphabet codes
type Sequence struct {
	alphabet *alphabet.Alphabet
	data     []byte
}

// New parses a string of (case-insensitive) symbols
func New(a *alphabet.Alphabet, s string) (Sequence, error) {
	data := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		code, ok := a.SymbolToCode(s[i])
		if !ok {
			return Sequence{}, fmt.Errorf("invalid %s symbol %q at position %d", a.Name(), s[i], i)
		}
		data[i] = code
	}
	return Sequence{alphabet: a, data: data}, nil
}

// Must is as New but panics on error. It is intended for literals.
func Must(a *alphabet.Alphabet, s string) Sequence {
	seq, err := New(a, s)
	if err != nil {
		panic(err)
	}
	return seq
}

// FromCodes builds a sequence from codes, which are copied
func FromCodes(a *alphabet.Alphabet, codes []byte) (Sequence, error) {
	for i, c := range codes {
		if int(c) >= a.Size() {
			return Sequence{}, fmt.Errorf("invalid %s code %d at position %d", a.Name(), c, i)
		}
	}
	data := make([]byte, len(codes))
	copy(data, codes)
	return Sequence{alphabet: a, data: data}, nil
}

// Alphabet returns the sequence's alphabet
func (s Sequence) Alphabet() *alphabet.Alphabet { return s.alphabet }

// Size returns the number of symbols
func (s Sequence) Size() int { return len(s.data) }

// CodeAt returns the code at position i
func (s Sequence) CodeAt(i int) byte { return s.data[i] }

// SymbolAt returns the upper case symbol at position i
func (s Sequence) SymbolAt(i int) byte { return s.alphabet.CodeToSymbol(s.data[i]) }

// String renders the sequence as upper case symbols
func (s Sequence) String() string {
	out := make([]byte, len(s.data))
	for i, c := range s.data {
		out[i] = s.alphabet.CodeToSymbol(c)
	}
	return string(out)
}

// Range returns the subsequence [from, to). The result shares no storage
// with s.
func (s Sequence) Range(from, to int) (Sequence, error) {
	if from < 0 || to > len(s.data) || from > to {
		return Sequence{}, fmt.Errorf("%w: [%d, %d) of %d", errOutOfRange, from, to, len(s.data))
	}
	data := make([]byte, to-from)
	copy(data, s.data[from:to])
	return Sequence{alphabet: s.alphabet, data: data}, nil
}

// ContainsWildcards reports whether [from, to) contains an ambiguity code
func (s Sequence) ContainsWildcards(from, to int) bool {
	for i := from; i < to; i++ {
		if s.alphabet.IsWildcard(s.data[i]) {
			return true
		}
	}
	return false
}

// ReverseComplement returns the reverse complement of a nucleotide sequence
func (s Sequence) ReverseComplement() (Sequence, error) {
	if !s.alphabet.HasComplement() {
		return Sequence{}, fmt.Errorf("%w: %s", errNoComplement, s.alphabet.Name())
	}
	data := make([]byte, len(s.data))
	for i, j := 0, len(s.data)-1; j >= 0; i, j = i+1, j-1 {
		data[i] = s.alphabet.Complement(s.data[j])
	}
	return Sequence{alphabet: s.alphabet, data: data}, nil
}

// Translate translates a nucleotide sequence to amino acids starting at the
// given frame. Trailing bases that do not form a full codon are ignored.
func (s Sequence) Translate(frame int) (Sequence, error) {
	if frame < 0 || frame > 2 {
		return Sequence{}, errBadFrame
	}
	if s.alphabet != alphabet.Nucleotide {
		return Sequence{}, fmt.Errorf("cannot translate a %s sequence", s.alphabet.Name())
	}
	n := (len(s.data) - frame) / 3
	if n <= 0 {
		return Sequence{alphabet: alphabet.AminoAcid}, nil
	}
	aa, err := alphabet.Translate(s.String()[frame : frame+3*n])
	if err != nil {
		return Sequence{}, err
	}
	return New(alphabet.AminoAcid, aa)
}

// Equal reports whether two sequences have the same alphabet and codes
func (s Sequence) Equal(other Sequence) bool {
	if s.alphabet != other.alphabet || len(s.data) != len(other.data) {
		return false
	}
	for i := range s.data {
		if s.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

package sequence

import (
	"errors"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
)

// MaxShortLength is the longest sequence a ShortSet can hold
const MaxShortLength = 29

var (
	errTooLong       = errors.New("only sequences shorter than 30 nucleotides are supported")
	errHasWildcards  = errors.New("sequences containing wildcards are not supported")
	errNotNucleotide = errors.New("only nucleotide sequences are supported")
)

// ShortSet is a set of short, wildcard-free nucleotide sequences packed
// into 64 bit keys
type ShortSet struct {
	set map[uint64]struct{}
}

// NewShortSet returns an empty set
func NewShortSet() *ShortSet {
	return &ShortSet{set: make(map[uint64]struct{})}
}

// ToLong packs a sequence as 2 bits per base with the length in the top bits
func ToLong(seq Sequence) (uint64, error) {
	if seq.Alphabet() != alphabet.Nucleotide {
		return 0, errNotNucleotide
	}
	if seq.Size() > MaxShortLength {
		return 0, errTooLong
	}
	if seq.ContainsWildcards(0, seq.Size()) {
		return 0, errHasWildcards
	}
	var ret uint64
	for i := 0; i < seq.Size(); i++ {
		ret <<= 2
		ret |= uint64(seq.CodeAt(i))
	}
	ret |= uint64(seq.Size()) << 58
	return ret, nil
}

// Add inserts seq and reports whether it was not already present
func (s *ShortSet) Add(seq Sequence) (bool, error) {
	key, err := ToLong(seq)
	if err != nil {
		return false, err
	}
	if _, ok := s.set[key]; ok {
		return false, nil
	}
	s.set[key] = struct{}{}
	return true, nil
}

// Contains reports whether seq is in the set. Sequences that cannot be
// packed are never contained.
func (s *ShortSet) Contains(seq Sequence) bool {
	key, err := ToLong(seq)
	if err != nil {
		return false
	}
	_, ok := s.set[key]
	return ok
}

// Len is the number of distinct sequences in the set
func (s *ShortSet) Len() int { return len(s.set) }

// Package motif implements wildcard-aware exact and fuzzy search of short
// patterns using bit-parallel (Bitap / Shift-Or) automata.
//
// A Motif allows an arbitrary non-empty set of codes at each position. For
// motifs shorter than 64 positions a BitapPattern can be derived, which
// provides matchers for exact search, substitution-only search, and
// substitution plus indel search. Motifs and patterns are immutable and may
// be shared between goroutines; matchers are single-use cursors.
package motif

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/sequence"
)

// MaxBitapSize is the exclusive upper bound on motif length for bitap
// patterns: every position must fit in one 64 bit register
const MaxBitapSize = 64

// Motif is a pattern where each position allows a set of codes
type Motif struct {
	alphabet *alphabet.Alphabet
	size     int
	// data.Test(code*size + position)
	data          *bitset.BitSet
	matchBitScore float64

	patternOnce sync.Once
	pattern     *BitapPattern
	patternErr  error
}

func newMotif(a *alphabet.Alphabet, size int, data *bitset.BitSet) (*Motif, error) {
	if size == 0 {
		return nil, ErrEmptyMotif
	}
	if !dataConsistent(data, size) {
		return nil, ErrEmptyPosition
	}
	m := &Motif{alphabet: a, size: size, data: data}
	m.matchBitScore = m.calculateMaxBitScore()
	return m, nil
}

// New creates a motif from a sequence. Each position allows every code
// matched by the symbol's wildcard, so a basic symbol allows only itself
// and e.g. R allows A, G and R.
func New(seq sequence.Sequence) (*Motif, error) {
	a := seq.Alphabet()
	size := seq.Size()
	data := bitset.New(uint(a.Size() * size))
	for i := 0; i < size; i++ {
		w := a.CodeToWildcard(seq.CodeAt(i))
		for j := 0; j < w.Size(); j++ {
			data.Set(uint(int(w.MatchingCode(j))*size + i))
		}
	}
	return newMotif(a, size, data)
}

// Parse creates a motif from a string of symbols
func Parse(a *alphabet.Alphabet, s string) (*Motif, error) {
	seq, err := sequence.New(a, s)
	if err != nil {
		return nil, err
	}
	return New(seq)
}

func dataConsistent(data *bitset.BitSet, size int) bool {
	n := int(data.Len())
outer:
	for i := 0; i < size; i++ {
		for j := i; j < n; j += size {
			if data.Test(uint(j)) {
				continue outer
			}
		}
		return false
	}
	return true
}

func (m *Motif) calculateMaxBitScore() float64 {
	scores := LnArray(m.alphabet)
	result := float64(m.size) * scores[len(scores)-1]
	for j := 0; j < m.size; j++ {
		result -= scores[m.AllowedBasicCodes(j)-1]
	}
	return result
}

// AllowedBasicCodes is the number of basic codes allowed at position
func (m *Motif) AllowedBasicCodes(position int) int {
	allowed := 0
	for i := 0; i < m.alphabet.BasicSize(); i++ {
		if m.data.Test(uint(i*m.size + position)) {
			allowed++
		}
	}
	return allowed
}

// Or returns the per-position union of two motifs of equal size,
// e.g. ATGC or TTCC = WTSC
func (m *Motif) Or(other *Motif) (*Motif, error) {
	if other.size != m.size {
		return nil, fmt.Errorf("%w: motif of size %d or motif of size %d", ErrSizeMismatch, m.size, other.size)
	}
	if other.alphabet != m.alphabet {
		return nil, ErrAlphabetMismatch
	}
	result := m.data.Clone()
	result.InPlaceUnion(other.data)
	return newMotif(m.alphabet, m.size, result)
}

// Size is the number of positions
func (m *Motif) Size() int { return m.size }

// Alphabet returns the motif's alphabet
func (m *Motif) Alphabet() *alphabet.Alphabet { return m.alphabet }

// Allows reports whether code is allowed at position
func (m *Motif) Allows(code byte, position int) bool {
	return m.data.Test(uint(int(code)*m.size + position))
}

// MatchBitScore is the maximal bit-score attainable by a perfect match
func (m *Motif) MatchBitScore() float64 { return m.matchBitScore }

// Matches reports whether the motif matches seq exactly at from. It is a
// plain position by position comparison.
func (m *Motif) Matches(seq sequence.Sequence, from int) (bool, error) {
	if from < 0 || from+m.size > seq.Size() {
		return false, fmt.Errorf("%w: motif of size %d at %d in sequence of size %d", ErrOutOfRange, m.size, from, seq.Size())
	}
	if seq.Alphabet() != m.alphabet {
		return false, ErrAlphabetMismatch
	}
	for i := 0; i < m.size; i++ {
		if !m.Allows(seq.CodeAt(from), i) {
			return false, nil
		}
		from++
	}
	return true, nil
}

// BitapPattern returns the cached bitap pattern without exact positions
func (m *Motif) BitapPattern() (*BitapPattern, error) {
	m.patternOnce.Do(func() {
		m.pattern, m.patternErr = m.ToBitapPattern(nil)
	})
	return m.pattern, m.patternErr
}

// ToBitapPattern builds a bitap pattern. Positions set in exactMask must
// match exactly even in fuzzy searches; exactMask may be nil.
func (m *Motif) ToBitapPattern(exactMask *bitset.BitSet) (*BitapPattern, error) {
	if m.size >= MaxBitapSize {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedSize, m.size)
	}
	aSize := m.alphabet.Size()
	patternMask := make([]uint64, aSize)
	reversePatternMask := make([]uint64, aSize)
	for i := range patternMask {
		patternMask[i] = ^uint64(0)
		reversePatternMask[i] = ^uint64(0)
	}
	p := uint(0)
	for i := 0; i < aSize; i++ {
		for j := 0; j < m.size; j++ {
			if m.data.Test(p) {
				patternMask[i] &^= 1 << uint(j)
				reversePatternMask[i] &^= 1 << uint(m.size-j-1)
			}
			p++
		}
	}
	mainData, err := newBitapData(m.size, patternMask, reversePatternMask)
	if err != nil {
		return nil, err
	}
	return newBitapPattern(m, mainData, exactMask)
}

// Equal reports whether two motifs allow the same codes at every position
func (m *Motif) Equal(other *Motif) bool {
	return m.size == other.size && m.alphabet == other.alphabet && m.data.Equal(other.data)
}

// String renders each position as the symbol standing for exactly its
// allowed basic codes, or as a bracketed list when the alphabet has none
func (m *Motif) String() string {
	var sb strings.Builder
	for j := 0; j < m.size; j++ {
		sb.WriteString(m.positionString(j))
	}
	return sb.String()
}

func (m *Motif) positionString(j int) string {
	var set uint64
	for i := 0; i < m.alphabet.BasicSize(); i++ {
		if m.data.Test(uint(i*m.size + j)) {
			set |= 1 << uint(i)
		}
	}
	if code, ok := m.alphabet.CodeForBasicSet(set); ok {
		return string(m.alphabet.CodeToSymbol(code))
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.alphabet.BasicSize(); i++ {
		if set&(1<<uint(i)) != 0 {
			sb.WriteByte(m.alphabet.CodeToSymbol(byte(i)))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

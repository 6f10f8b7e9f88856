package motif

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/virus-evolution/gomotif/pkg/sequence"
)

// BitapPattern is a compiled motif. It is immutable and can be shared by
// concurrent scans; each scan gets its own matcher.
type BitapPattern struct {
	motif         *Motif
	mainData      *bitapData
	secondaryData *bitapData
	// positions which must match exactly even in fuzzy searches, may be nil
	exactMask *bitset.BitSet

	matchScore             []float64
	mismatchScore          []float64
	averageMismatchPenalty float64
}

func newBitapPattern(m *Motif, mainData *bitapData, exactMask *bitset.BitSet) (*BitapPattern, error) {
	p := &BitapPattern{motif: m, mainData: mainData}
	mask := exactMask
	if exactMask != nil {
		var err error
		p.exactMask = exactMask.Clone()
		if p.secondaryData, err = mainData.toSecondary(exactMask); err != nil {
			return nil, err
		}
	} else {
		mask = bitset.New(uint(m.size))
	}
	p.matchScore, p.mismatchScore, p.averageMismatchPenalty = positionScores(m, mask)
	return p, nil
}

// AverageMismatchPenalty is the mean difference between the match and the
// single substitution bit-score over all positions. It is positive.
func (p *BitapPattern) AverageMismatchPenalty() float64 { return p.averageMismatchPenalty }

// Motif returns the compiled motif
func (p *BitapPattern) Motif() *Motif { return p.motif }

// ExactMask returns a copy of the exact positions, or nil if there are none
func (p *BitapPattern) ExactMask() *bitset.BitSet {
	if p.exactMask == nil {
		return nil
	}
	return p.exactMask.Clone()
}

// HasExactPositions reports whether fuzzy searches are gated by exact positions
func (p *BitapPattern) HasExactPositions() bool { return p.secondaryData != nil }

func (p *BitapPattern) check(seq sequence.Sequence, from, to int) error {
	if from < 0 || to > seq.Size() || from > to {
		return fmt.Errorf("%w: [%d, %d) in sequence of size %d", ErrOutOfRange, from, to, seq.Size())
	}
	if seq.Alphabet() != p.motif.alphabet {
		return fmt.Errorf("%w: %s target for %s motif", ErrAlphabetMismatch, seq.Alphabet().Name(), p.motif.alphabet.Name())
	}
	return nil
}

func checkBudget(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeErrors, n)
	}
	return nil
}

func (p *BitapPattern) secondaryIterator(seq sequence.Sequence, from, to int) stateIterator {
	if p.secondaryData == nil {
		return nil
	}
	return newExactIterator(p.secondaryData, seq, from, to)
}

// ExactSearch returns the first exact match in [from, to) or NoMatch
func (p *BitapPattern) ExactSearch(seq sequence.Sequence, from, to int) (int, error) {
	m, err := p.ExactMatcher(seq, from, to)
	if err != nil {
		return NoMatch, err
	}
	return m.FindNext(), nil
}

// ExactMatcher returns the start positions of exact matches in [from, to)
// in ascending order
func (p *BitapPattern) ExactMatcher(seq sequence.Sequence, from, to int) (ScoredMatcher, error) {
	if err := p.check(seq, from, to); err != nil {
		return nil, err
	}
	return &scoredMatcher{
		matcher: matcher{main: newExactIterator(p.mainData, seq, from, to)},
		pattern: p,
		seq:     seq,
	}, nil
}

// SubstitutionOnlyMatcherFirst returns the start positions of matches with
// at most maxSubstitutions substitutions in [from, to) in ascending order.
// Exact positions, if any, must match without substitutions.
func (p *BitapPattern) SubstitutionOnlyMatcherFirst(maxSubstitutions int, seq sequence.Sequence, from, to int) (ScoredMatcher, error) {
	if err := p.check(seq, from, to); err != nil {
		return nil, err
	}
	if err := checkBudget(maxSubstitutions); err != nil {
		return nil, err
	}
	return &scoredMatcher{
		matcher: matcher{
			main:      newSubstitutionFirstIterator(p.mainData, seq, maxSubstitutions, from, to),
			secondary: p.secondaryIterator(seq, from, to),
		},
		pattern: p,
		seq:     seq,
	}, nil
}

// SubstitutionAndIndelMatcherLast returns the positions of the last matched
// symbol of matches with at most maxErrors substitutions, insertions or
// deletions in [from, to) in ascending order
func (p *BitapPattern) SubstitutionAndIndelMatcherLast(maxErrors int, seq sequence.Sequence, from, to int) (Matcher, error) {
	if p.secondaryData != nil {
		return nil, ErrNotImplemented
	}
	if err := p.check(seq, from, to); err != nil {
		return nil, err
	}
	if err := checkBudget(maxErrors); err != nil {
		return nil, err
	}
	return &matcher{main: newIndelLastIterator(p.mainData, seq, maxErrors, from, to)}, nil
}

// SubstitutionAndIndelMatcherFirst returns the positions of the first
// matched symbol of matches with at most maxErrors substitutions,
// insertions or deletions in [from, to) in descending order
func (p *BitapPattern) SubstitutionAndIndelMatcherFirst(maxErrors int, seq sequence.Sequence, from, to int) (Matcher, error) {
	if p.secondaryData != nil {
		return nil, ErrNotImplemented
	}
	if err := p.check(seq, from, to); err != nil {
		return nil, err
	}
	if err := checkBudget(maxErrors); err != nil {
		return nil, err
	}
	return &matcher{main: newIndelFirstIterator(p.mainData, seq, maxErrors, from, to)}, nil
}

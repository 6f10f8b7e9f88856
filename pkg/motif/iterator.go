package motif

import "github.com/virus-evolution/gomotif/pkg/sequence"

// stateIterator is a bit-parallel automaton consuming a target one symbol
// per call to next. next returns false once the range is exhausted; after a
// successful step matched and errs describe the current state.
type stateIterator interface {
	next() bool
	matched() bool
	errs() int
	position() int
}

// registers holds the state shared by all automata. R[d] bit j is 0 when
// pattern position j is reachable with at most d errors.
type registers struct {
	data      *bitapData
	seq       sequence.Sequence
	R         []uint64
	to        int
	current   int
	processed int
	errors    int
	match     bool
}

func newRegisters(data *bitapData, seq sequence.Sequence, count, from, to int) registers {
	r := registers{data: data, seq: seq, R: make([]uint64, count), to: to, current: from}
	for d := range r.R {
		r.R[d] = ^uint64(0) << uint(d)
	}
	return r
}

func (r *registers) matched() bool { return r.match }

func (r *registers) errs() int { return r.errors }

type exactIterator struct {
	registers
}

func newExactIterator(data *bitapData, seq sequence.Sequence, from, to int) *exactIterator {
	return &exactIterator{newRegisters(data, seq, 1, from, to)}
}

func (it *exactIterator) next() bool {
	it.match = false
	if it.current == it.to {
		return false
	}
	it.R[0] <<= 1
	it.R[0] |= it.data.patternMask[it.seq.CodeAt(it.current)]
	it.current++
	it.match = it.R[0]&it.data.matchingMask() == 0
	return true
}

// position is the first symbol of the match
func (it *exactIterator) position() int { return it.current - it.data.size }

type substitutionFirstIterator struct {
	registers
}

func newSubstitutionFirstIterator(data *bitapData, seq sequence.Sequence, maxSubstitutions, from, to int) *substitutionFirstIterator {
	return &substitutionFirstIterator{newRegisters(data, seq, maxSubstitutions+1, from, to)}
}

func (it *substitutionFirstIterator) next() bool {
	it.match = false
	if it.current == it.to {
		return false
	}
	matchingMask := it.data.matchingMask()
	mask := it.data.patternMask[it.seq.CodeAt(it.current)]
	it.current++
	it.processed++

	R := it.R
	R[0] <<= 1
	mismatchTmp := R[0]
	R[0] |= mask
	if R[0]&matchingMask == 0 {
		it.errors = 0
		it.match = true
	}
	for d := 1; d < len(R); d++ {
		R[d] <<= 1
		preMismatchTmp := R[d]
		R[d] |= mask
		R[d] &= mismatchTmp
		if !it.match && R[d]&matchingMask == 0 && it.processed >= it.data.size {
			it.errors = d
			it.match = true
		}
		mismatchTmp = preMismatchTmp
	}
	return true
}

func (it *substitutionFirstIterator) position() int { return it.current - it.data.size }

// indelState is the Levenshtein recurrence shared by both indel automata
type indelState struct {
	registers
}

func (s *indelState) update(mask uint64) {
	matchingMask := s.data.matchingMask()
	R := s.R

	insertionTmp := R[0]
	R[0] <<= 1
	mismatchTmp := R[0]
	R[0] |= mask
	deletionTmp := R[0]
	if R[0]&matchingMask == 0 {
		s.errors = 0
		s.match = true
	}

	minProcessed := s.data.size - len(R) + 1
	for d := 1; d < len(R); d++ {
		preInsertionTmp := R[d]
		R[d] <<= 1
		preMismatchTmp := R[d]
		R[d] |= mask
		R[d] &= insertionTmp & mismatchTmp & (deletionTmp << 1)
		if !s.match && R[d]&matchingMask == 0 && s.processed >= minProcessed {
			s.errors = d
			s.match = true
		}
		deletionTmp = R[d]
		insertionTmp = preInsertionTmp
		mismatchTmp = preMismatchTmp
	}
}

type indelLastIterator struct {
	indelState
}

func newIndelLastIterator(data *bitapData, seq sequence.Sequence, maxErrors, from, to int) *indelLastIterator {
	return &indelLastIterator{indelState{newRegisters(data, seq, maxErrors+1, from, to)}}
}

func (it *indelLastIterator) next() bool {
	it.match = false
	if it.current == it.to {
		return false
	}
	it.processed++
	code := it.seq.CodeAt(it.current)
	it.current++
	it.update(it.data.patternMask[code])
	return true
}

// position is the last symbol of the match
func (it *indelLastIterator) position() int { return it.current - 1 }

// indelFirstIterator scans right to left over [from, to), so the register
// "to" holds from-1 and current starts at to-1
type indelFirstIterator struct {
	indelState
}

func newIndelFirstIterator(data *bitapData, seq sequence.Sequence, maxErrors, from, to int) *indelFirstIterator {
	return &indelFirstIterator{indelState{newRegisters(data, seq, maxErrors+1, to-1, from-1)}}
}

func (it *indelFirstIterator) next() bool {
	it.match = false
	if it.current == it.to {
		return false
	}
	it.processed++
	code := it.seq.CodeAt(it.current)
	it.current--
	it.update(it.data.reversePatternMask[code])
	return true
}

// position is the first symbol of the match
func (it *indelFirstIterator) position() int { return it.current + 1 }

package motif

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// bitapData holds per-code mismatch masks: bit j of patternMask[code] is set
// when code does not match position j. reversePatternMask is mirrored for
// right to left scans.
type bitapData struct {
	size               int
	patternMask        []uint64
	reversePatternMask []uint64
}

func newBitapData(size int, patternMask, reversePatternMask []uint64) (*bitapData, error) {
	if len(patternMask) != len(reversePatternMask) {
		return nil, fmt.Errorf("%w: %d forward masks and %d reverse masks", ErrSizeMismatch, len(patternMask), len(reversePatternMask))
	}
	return &bitapData{size: size, patternMask: patternMask, reversePatternMask: reversePatternMask}, nil
}

// matchingMask is the register bit signalling a complete match
func (d *bitapData) matchingMask() uint64 {
	return 1 << uint(d.size-1)
}

// toSecondary makes every code match at positions outside exactMask, so an
// automaton built on the result only checks the exact positions
func (d *bitapData) toSecondary(exactMask *bitset.BitSet) (*bitapData, error) {
	if int(exactMask.Len()) != d.size {
		return nil, fmt.Errorf("%w: exact mask of size %d for pattern of size %d", ErrSizeMismatch, exactMask.Len(), d.size)
	}
	pm := make([]uint64, len(d.patternMask))
	rpm := make([]uint64, len(d.reversePatternMask))
	copy(pm, d.patternMask)
	copy(rpm, d.reversePatternMask)
	for j := 0; j < d.size; j++ {
		if exactMask.Test(uint(j)) {
			continue
		}
		for i := range pm {
			pm[i] &^= 1 << uint(j)
			rpm[i] &^= 1 << uint(d.size-j-1)
		}
	}
	return &bitapData{size: d.size, patternMask: pm, reversePatternMask: rpm}, nil
}

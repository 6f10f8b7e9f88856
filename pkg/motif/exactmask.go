package motif

import (
	"fmt"
	"math"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/sequence"
)

// MotifWithExactMask is a motif plus the positions where fuzzy searches
// must still match exactly, with approximate per-position bit-scores
type MotifWithExactMask struct {
	motif     *Motif
	exactMask *bitset.BitSet

	defaultMatchScore      []float64
	mismatchScore          []float64
	averageMismatchPenalty float64
}

// positionScores computes per-position match and mismatch bit-scores and
// their mean difference. The mismatch score discounts the number of
// positions allowed to vary.
func positionScores(m *Motif, exactMask *bitset.BitSet) (match, mismatch []float64, avg float64) {
	costs := CostArray(m.alphabet)
	match = make([]float64, m.size)
	mismatch = make([]float64, m.size)
	varying := m.size - int(exactMask.Count())
	lengthPenalty := math.Log(float64(max(1, varying)))
	sum := 0.0
	for i := 0; i < m.size; i++ {
		match[i] = costs[m.AllowedBasicCodes(i)-1]
		mismatch[i] = match[i] - lengthPenalty - costs[0]
		sum += match[i] - mismatch[i]
	}
	return match, mismatch, sum / float64(m.size)
}

// NewWithExactMask pairs a motif with its exact positions
func NewWithExactMask(m *Motif, exactMask *bitset.BitSet) (*MotifWithExactMask, error) {
	if int(exactMask.Len()) != m.size {
		return nil, fmt.Errorf("%w: exact mask of size %d for motif of size %d", ErrSizeMismatch, exactMask.Len(), m.size)
	}
	me := &MotifWithExactMask{motif: m, exactMask: exactMask.Clone()}
	me.defaultMatchScore, me.mismatchScore, me.averageMismatchPenalty = positionScores(m, exactMask)
	return me, nil
}

// ParseWithExactMask reads a motif where upper case symbols must match
// exactly and lower case symbols tolerate errors in fuzzy searches
func ParseWithExactMask(a *alphabet.Alphabet, s string) (*MotifWithExactMask, error) {
	seq, err := sequence.New(a, s)
	if err != nil {
		return nil, err
	}
	m, err := New(seq)
	if err != nil {
		return nil, err
	}
	if m.size != len(s) {
		return nil, fmt.Errorf("%w: motif %q parsed to %d positions", ErrSizeMismatch, s, m.size)
	}
	mask := bitset.New(uint(len(s)))
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			mask.Set(uint(i))
		}
	}
	return NewWithExactMask(m, mask)
}

// ParseNucleotide is ParseWithExactMask over the nucleotide alphabet
func ParseNucleotide(s string) (*MotifWithExactMask, error) {
	return ParseWithExactMask(alphabet.Nucleotide, s)
}

// ParseAminoAcid is ParseWithExactMask over the amino acid alphabet
func ParseAminoAcid(s string) (*MotifWithExactMask, error) {
	return ParseWithExactMask(alphabet.AminoAcid, s)
}

func (me *MotifWithExactMask) DefaultMatchBitScore(position int) float64 {
	return me.defaultMatchScore[position]
}

// MatchBitScore scores code matching at position. A wildcard is scored by
// the wider of its own set and the position's allowed set.
func (me *MotifWithExactMask) MatchBitScore(position int, code byte) float64 {
	a := me.motif.alphabet
	if int(code) < a.BasicSize() {
		return me.defaultMatchScore[position]
	}
	widest := max(me.motif.AllowedBasicCodes(position), a.CodeToWildcard(code).BasicSize())
	return CostArray(a)[widest-1]
}

// MismatchBitScore is -Inf at exact positions
func (me *MotifWithExactMask) MismatchBitScore(position int) float64 {
	if me.exactMask.Test(uint(position)) {
		return math.Inf(-1)
	}
	return me.mismatchScore[position]
}

func (me *MotifWithExactMask) MismatchBitScoreCost(position int) float64 {
	return me.DefaultMatchBitScore(position) - me.MismatchBitScore(position)
}

func (me *MotifWithExactMask) AverageMismatchPenalty() float64 { return me.averageMismatchPenalty }

func (me *MotifWithExactMask) Size() int { return me.motif.size }

func (me *MotifWithExactMask) Motif() *Motif { return me.motif }

// ExactMask returns a copy of the exact positions
func (me *MotifWithExactMask) ExactMask() *bitset.BitSet { return me.exactMask.Clone() }

// IsExact reports whether position must match exactly
func (me *MotifWithExactMask) IsExact(position int) bool { return me.exactMask.Test(uint(position)) }

// BitapPattern compiles the motif with its exact positions
func (me *MotifWithExactMask) BitapPattern() (*BitapPattern, error) {
	return me.motif.ToBitapPattern(me.exactMask)
}

// String renders the motif with exact positions upper case
func (me *MotifWithExactMask) String() string {
	s := me.motif.String()
	var sb strings.Builder
	pos := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '[':
			sb.WriteByte(c)
			for i++; s[i] != ']'; i++ {
				sb.WriteByte(me.caseAt(pos, s[i]))
			}
			sb.WriteByte(']')
		default:
			sb.WriteByte(me.caseAt(pos, c))
		}
		pos++
	}
	return sb.String()
}

func (me *MotifWithExactMask) caseAt(position int, c byte) byte {
	if me.IsExact(position) {
		return c
	}
	return strings.ToLower(string(c))[0]
}

package motif

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/sequence"
)

const nucSymbols = "AGCTNRYSWKMBDHV"

func randomSeq(r *rand.Rand, symbols string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = symbols[r.Intn(len(symbols))]
	}
	return string(b)
}

func mustMotif(t *testing.T, a *alphabet.Alphabet, s string) *Motif {
	t.Helper()
	m, err := Parse(a, s)
	require.NoError(t, err)
	return m
}

func TestCost(t *testing.T) {
	assert.InDelta(t, 0.0, Cost(alphabet.Nucleotide, 4), 1e-12)
	assert.InDelta(t, 1.0, Cost(alphabet.Nucleotide, 2), 1e-12)
	assert.InDelta(t, 2.0, Cost(alphabet.Nucleotide, 1), 1e-12)
	assert.InDelta(t, 2.0, MaxCost(alphabet.Nucleotide), 1e-12)

	ln := LnArray(alphabet.AminoAcid)
	assert.Len(t, ln, alphabet.AminoAcid.BasicSize())
	assert.InDelta(t, 0.0, ln[0], 1e-12)
	assert.InDelta(t, 0.0, CostArray(alphabet.AminoAcid)[alphabet.AminoAcid.BasicSize()-1], 1e-12)
}

func TestNewMotif(t *testing.T) {
	m := mustMotif(t, alphabet.Nucleotide, "ARN")
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 1, m.AllowedBasicCodes(0))
	assert.Equal(t, 2, m.AllowedBasicCodes(1))
	assert.Equal(t, 4, m.AllowedBasicCodes(2))

	code := func(c byte) byte {
		b, ok := alphabet.Nucleotide.SymbolToCode(c)
		require.True(t, ok)
		return b
	}
	assert.True(t, m.Allows(code('A'), 0))
	assert.False(t, m.Allows(code('G'), 0))
	assert.False(t, m.Allows(code('R'), 0))
	assert.True(t, m.Allows(code('G'), 1))
	assert.True(t, m.Allows(code('R'), 1))
	assert.False(t, m.Allows(code('N'), 1))
	assert.True(t, m.Allows(code('N'), 2))

	assert.InDelta(t, 2.0+1.0+0.0, m.MatchBitScore(), 1e-12)
	assert.Equal(t, "ARN", m.String())

	_, err := Parse(alphabet.Nucleotide, "")
	assert.ErrorIs(t, err, ErrEmptyMotif)
}

func TestOr(t *testing.T) {
	a := mustMotif(t, alphabet.Nucleotide, "ATGC")
	b := mustMotif(t, alphabet.Nucleotide, "TTCC")
	m, err := a.Or(b)
	require.NoError(t, err)
	assert.Equal(t, "WTSC", m.String())
	assert.True(t, m.Equal(mustMotif(t, alphabet.Nucleotide, "WTSC")))
	assert.False(t, m.Equal(a))

	_, err = a.Or(mustMotif(t, alphabet.Nucleotide, "ATG"))
	assert.ErrorIs(t, err, ErrSizeMismatch)
	_, err = a.Or(mustMotif(t, alphabet.AminoAcid, "ATGC"))
	assert.ErrorIs(t, err, ErrAlphabetMismatch)
}

func TestMatches(t *testing.T) {
	m := mustMotif(t, alphabet.Nucleotide, "ARN")
	seq := sequence.Must(alphabet.Nucleotide, "TAGCAR")
	tests := []struct {
		from int
		want bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{3, false},
	}
	for _, tt := range tests {
		got, err := m.Matches(seq, tt.from)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "from %d", tt.from)
	}
	_, err := m.Matches(seq, 4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = m.Matches(seq, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStringBracketFallback(t *testing.T) {
	a := mustMotif(t, alphabet.AminoAcid, "AK")
	b := mustMotif(t, alphabet.AminoAcid, "CK")
	m, err := a.Or(b)
	require.NoError(t, err)
	assert.Equal(t, "[AC]K", m.String())
}

func TestUnsupportedSize(t *testing.T) {
	m := mustMotif(t, alphabet.Nucleotide, strings.Repeat("A", 64))
	_, err := m.BitapPattern()
	assert.ErrorIs(t, err, ErrUnsupportedSize)
	_, err = m.ToBitapPattern(nil)
	assert.True(t, errors.Is(err, ErrUnsupportedSize))

	m = mustMotif(t, alphabet.Nucleotide, strings.Repeat("A", 63))
	p, err := m.BitapPattern()
	require.NoError(t, err)
	seq := sequence.Must(alphabet.Nucleotide, "C"+strings.Repeat("A", 63))
	pos, err := p.ExactSearch(seq, 0, seq.Size())
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestBitapPatternCached(t *testing.T) {
	m := mustMotif(t, alphabet.Nucleotide, "ACGT")
	p1, err := m.BitapPattern()
	require.NoError(t, err)
	p2, err := m.BitapPattern()
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Same(t, m, p1.Motif())
	assert.Nil(t, p1.ExactMask())
	assert.False(t, p1.HasExactPositions())
}

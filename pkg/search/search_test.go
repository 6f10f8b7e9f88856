package search

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virus-evolution/gomotif/pkg/fasta"
	"github.com/virus-evolution/gomotif/pkg/motifset"
)

func compile(t *testing.T, pattern, alphabet, mode string, maxErrors int, minScore *float64) []motifset.Compiled {
	t.Helper()
	compiled, err := motifset.Single(pattern).Compile(motifset.Defaults{
		Alphabet:  alphabet,
		Mode:      mode,
		MaxErrors: maxErrors,
		MinScore:  minScore,
	})
	require.NoError(t, err)
	return compiled
}

type span struct {
	strand     byte
	start, end int
	errors     int
	site       string
}

func spans(hits []Hit) []span {
	out := make([]span, len(hits))
	for i, h := range hits {
		out[i] = span{h.Strand, h.Start, h.End, h.Errors, h.Site}
	}
	return out
}

func TestScanRecordBothStrands(t *testing.T) {
	compiled := compile(t, "ttgaca", "nucleotide", motifset.ModeExact, 0, nil)
	record := fasta.Record{ID: "r", Seq: "GGTTGACAGGTGTCAAGG"}

	hits, err := ScanRecord(compiled, record, Options{})
	require.NoError(t, err)
	assert.Equal(t, []span{{'+', 2, 8, 0, "TTGACA"}}, spans(hits))

	hits, err = ScanRecord(compiled, record, Options{BothStrands: true})
	require.NoError(t, err)
	assert.Equal(t, []span{
		{'+', 2, 8, 0, "TTGACA"},
		{'-', 10, 16, 0, "TTGACA"},
	}, spans(hits))

	for _, h := range hits {
		assert.Equal(t, "r", h.Record)
		assert.Equal(t, "ttgaca", h.Motif)
		assert.True(t, h.Scored)
		assert.InDelta(t, 12.0, h.Score, 1e-9)
		assert.InDelta(t, 0.0, h.ScoreCost, 1e-9)
	}
}

func TestScanRecordSubstitution(t *testing.T) {
	record := fasta.Record{ID: "r", Seq: "GGTTGACAGGTTTACAGG"}

	hits, err := ScanRecord(compile(t, "ttgaca", "", motifset.ModeSubstitution, 1, nil), record, Options{})
	require.NoError(t, err)
	assert.Equal(t, []span{
		{'+', 2, 8, 0, "TTGACA"},
		{'+', 10, 16, 1, "TTTACA"},
	}, spans(hits))
	assert.Less(t, hits[1].Score, hits[0].Score)

	minScore := 11.0
	hits, err = ScanRecord(compile(t, "ttgaca", "", motifset.ModeSubstitution, 1, &minScore), record, Options{})
	require.NoError(t, err)
	assert.Equal(t, []span{{'+', 2, 8, 0, "TTGACA"}}, spans(hits))
}

func TestScanRecordExactPositions(t *testing.T) {
	// the mismatch at 13 is on an exact position
	record := fasta.Record{ID: "r", Seq: "GGTTGACAGGTTGCCAGG"}
	hits, err := ScanRecord(compile(t, "ttGAca", "", motifset.ModeSubstitution, 1, nil), record, Options{})
	require.NoError(t, err)
	assert.Equal(t, []span{{'+', 2, 8, 0, "TTGACA"}}, spans(hits))

	hits, err = ScanRecord(compile(t, "ttgaca", "", motifset.ModeSubstitution, 1, nil), record, Options{})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestScanRecordIndels(t *testing.T) {
	// ACGGCAGC with an inserted T
	record := fasta.Record{ID: "r", Seq: "TTTTACGGTCAGCTTTT"}
	for _, mode := range []string{motifset.ModeIndelLast, motifset.ModeIndelFirst} {
		hits, err := ScanRecord(compile(t, "acggcagc", "", mode, 1, nil), record, Options{})
		require.NoError(t, err, mode)
		assert.Equal(t, []span{{'+', 4, 13, 1, "ACGGTCAGC"}}, spans(hits), mode)
		assert.False(t, hits[0].Scored, mode)
	}
}

// editDistance is the plain Levenshtein distance
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub++
			}
			cur[j] = min(sub, prev[j]+1, cur[j-1]+1)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func TestScanRecordIndelSites(t *testing.T) {
	const pattern = "acaccaca"
	const maxErrors = 2
	rng := rand.New(rand.NewSource(1))
	for _, mode := range []string{motifset.ModeIndelLast, motifset.ModeIndelFirst} {
		compiled := compile(t, pattern, "", mode, maxErrors, nil)
		total := 0
		for i := 0; i < 200; i++ {
			var sb strings.Builder
			for j := 0; j < 40; j++ {
				sb.WriteByte("AC"[rng.Intn(2)])
			}
			record := fasta.Record{ID: "r", Seq: sb.String()}
			hits, err := ScanRecord(compiled, record, Options{})
			require.NoError(t, err)
			for _, h := range hits {
				total++
				require.Equal(t, record.Seq[h.Start:h.End], h.Site)
				assert.LessOrEqual(t, h.Errors, maxErrors)
				assert.LessOrEqual(t, editDistance(strings.ToUpper(pattern), h.Site), h.Errors,
					"%s: %s [%d,%d) %s", mode, record.Seq, h.Start, h.End, h.Site)
			}
		}
		assert.Positive(t, total, mode)
	}
}

func TestScanRecordFrames(t *testing.T) {
	compiled := compile(t, "MK", "protein", motifset.ModeExact, 0, nil)
	record := fasta.Record{ID: "r", Seq: "CATGAAATAAG"}

	hits, err := ScanRecord(compiled, record, Options{Frames: true})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Frame)
	assert.Equal(t, []span{{'+', 1, 7, 0, "MK"}}, spans(hits))

	// untranslated, the record is read as residues
	hits, err = ScanRecord(compiled, record, Options{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestScanRecordFramesMinusStrand(t *testing.T) {
	compiled := compile(t, "MK", "protein", motifset.ModeExact, 0, nil)
	// reverse complement of CATGAAATAAG
	record := fasta.Record{ID: "r", Seq: "CTTATTTCATG"}

	hits, err := ScanRecord(compiled, record, Options{Frames: true, BothStrands: true})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Frame)
	assert.Equal(t, []span{{'-', 4, 10, 0, "MK"}}, spans(hits))
}

func TestScanRecordUnique(t *testing.T) {
	compiled := compile(t, "acg", "", motifset.ModeExact, 0, nil)
	record := fasta.Record{ID: "r", Seq: "ACGTACGTACG"}

	hits, err := ScanRecord(compiled, record, Options{})
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	hits, err = ScanRecord(compiled, record, Options{Unique: true})
	require.NoError(t, err)
	assert.Equal(t, []span{{'+', 0, 3, 0, "ACG"}}, spans(hits))
}

func TestScanRecordBadSequence(t *testing.T) {
	compiled := compile(t, "acg", "", motifset.ModeExact, 0, nil)
	_, err := ScanRecord(compiled, fasta.Record{ID: "bad", Seq: "ACGU"}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record bad")
}

func TestHitOutput(t *testing.T) {
	h := Hit{Record: "r", Motif: "m", Strand: '-', Frame: 2, Start: 1, End: 7, Errors: 1, Score: 3.25, Scored: true, Site: "MK"}
	assert.Equal(t, "r\tm\t-\t2\t1\t7\t1\t3.2500\t0.0000\tMK", h.TSV())

	h.Scored = false
	assert.Equal(t, "r\tm\t-\t2\t1\t7\t1\tNA\tNA\tMK", h.TSV())

	rec := h.FastaRecord()
	assert.Equal(t, "r:1-7(-)", rec.ID)
	assert.Equal(t, "r:1-7(-) motif=m errors=1 frame=2", rec.Description)
	assert.Equal(t, "MK", rec.Seq)
}

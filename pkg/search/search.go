// Package search scans fasta records (or reads) with compiled motifs and
// reports every hit, optionally on both strands and in translated frames
package search

import (
	"fmt"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/fasta"
	"github.com/virus-evolution/gomotif/pkg/motif"
	"github.com/virus-evolution/gomotif/pkg/motifset"
	"github.com/virus-evolution/gomotif/pkg/sequence"
)

// Output formats
const (
	FormatTSV   = "tsv"
	FormatFasta = "fasta"
)

// Options control how records are scanned and reported
type Options struct {
	// also scan the reverse complement of nucleotide records
	BothStrands bool
	// translate nucleotide records in three frames for amino acid motifs
	Frames bool
	// report each distinct site at most once per record and motif
	Unique  bool
	Threads int
	Format  string
	// line width of extracted sites when Format is FormatFasta, 0 for none
	Wrap int
}

// Hit is one match. Start and End are 0-based, end exclusive, in the
// coordinates of the forward nucleotide record (or of the amino acid
// record if it was not translated).
type Hit struct {
	Record    string
	Idx       int
	Motif     string
	Strand    byte
	Frame     int
	Start     int
	End       int
	Errors    int
	Score     float64
	ScoreCost float64
	Scored    bool
	Site      string
}

// target is one scannable rendition of a record
type target struct {
	seq    sequence.Sequence
	strand byte
	// 0 if untranslated, else the reading frame 1, 2 or 3
	frame int
	// length of the untranslated record
	length int
}

// toForward maps a range of the target back to the forward record
func (t target) toForward(start, end int) (int, int) {
	if t.frame > 0 {
		start = t.frame - 1 + 3*start
		end = t.frame - 1 + 3*end
	}
	if t.strand == '-' {
		start, end = t.length-end, t.length-start
	}
	return start, end
}

func targets(record fasta.Record, a *alphabet.Alphabet, opts Options) ([]target, error) {
	if a == alphabet.AminoAcid && !opts.Frames {
		seq, err := record.Sequence(a)
		if err != nil {
			return nil, err
		}
		return []target{{seq: seq, strand: '+', length: seq.Size()}}, nil
	}

	nuc, err := record.Sequence(alphabet.Nucleotide)
	if err != nil {
		return nil, err
	}
	strands := []target{{seq: nuc, strand: '+', length: nuc.Size()}}
	if opts.BothStrands {
		rc, err := nuc.ReverseComplement()
		if err != nil {
			return nil, err
		}
		strands = append(strands, target{seq: rc, strand: '-', length: nuc.Size()})
	}
	if a == alphabet.Nucleotide {
		return strands, nil
	}

	translated := make([]target, 0, 3*len(strands))
	for _, s := range strands {
		for frame := 0; frame < 3; frame++ {
			aa, err := s.seq.Translate(frame)
			if err != nil {
				return nil, err
			}
			translated = append(translated, target{seq: aa, strand: s.strand, frame: frame + 1, length: s.length})
		}
	}
	return translated, nil
}

// match is a hit in target coordinates
type match struct {
	start, end, errors int
	score, cost        float64
	scored             bool
}

func scored(m motif.ScoredMatcher, start, errors int, size int) (match, error) {
	score, err := m.BitScore()
	if err != nil {
		return match{}, err
	}
	cost, err := m.BitScoreCost()
	if err != nil {
		return match{}, err
	}
	return match{start: start, end: start + size, errors: errors, score: score, cost: cost, scored: true}, nil
}

// scan runs the motif's matcher over the whole target
func scan(c motifset.Compiled, seq sequence.Sequence) ([]match, error) {
	p := c.Pattern
	size := p.Motif().Size()
	n := seq.Size()
	var out []match

	switch c.Mode {
	case motifset.ModeExact, motifset.ModeSubstitution:
		var (
			m   motif.ScoredMatcher
			err error
		)
		if c.Mode == motifset.ModeExact {
			m, err = p.ExactMatcher(seq, 0, n)
		} else {
			m, err = p.SubstitutionOnlyMatcherFirst(c.MaxErrors, seq, 0, n)
		}
		if err != nil {
			return nil, err
		}
		for pos := m.FindNext(); pos != motif.NoMatch; pos = m.FindNext() {
			hit, err := scored(m, pos, m.NumberOfErrors(), size)
			if err != nil {
				return nil, err
			}
			if c.HasMin && hit.score < c.MinScore {
				continue
			}
			out = append(out, hit)
		}

	case motifset.ModeIndelLast:
		raw, err := p.SubstitutionAndIndelMatcherLast(c.MaxErrors, seq, 0, n)
		if err != nil {
			return nil, err
		}
		f := motif.NewFilter(raw)
		for pos := f.FindNext(); pos != motif.NoMatch; pos = f.FindNext() {
			end := pos + 1
			start, errors := refineStart(p.Motif(), c.MaxErrors, seq, end)
			out = append(out, match{start: start, end: end, errors: min(errors, f.NumberOfErrors())})
		}

	case motifset.ModeIndelFirst:
		raw, err := p.SubstitutionAndIndelMatcherFirst(c.MaxErrors, seq, 0, n)
		if err != nil {
			return nil, err
		}
		f := motif.NewFilter(raw)
		for pos := f.FindNext(); pos != motif.NoMatch; pos = f.FindNext() {
			end, errors := refineEnd(p.Motif(), c.MaxErrors, seq, pos)
			out = append(out, match{start: pos, end: end, errors: min(errors, f.NumberOfErrors())})
		}
		// reported in descending order
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}

	default:
		return nil, fmt.Errorf("%w: %q", motifset.ErrBadMode, c.Mode)
	}
	return out, nil
}

// anchoredDistances returns the edit distance between the motif and the t
// symbols next to anchor, for t from 0 to span. With dir > 0 the symbols are
// seq[anchor:anchor+t], otherwise seq[anchor-t:anchor].
func anchoredDistances(m *motif.Motif, seq sequence.Sequence, anchor, dir, span int) []int {
	size := m.Size()
	col := make([]int, size+1)
	next := make([]int, size+1)
	for i := range col {
		col[i] = i
	}
	d := make([]int, span+1)
	d[0] = col[size]
	for t := 1; t <= span; t++ {
		var code byte
		if dir > 0 {
			code = seq.CodeAt(anchor + t - 1)
		} else {
			code = seq.CodeAt(anchor - t)
		}
		next[0] = t
		for i := 1; i <= size; i++ {
			position := i - 1
			if dir <= 0 {
				position = size - i
			}
			sub := col[i-1]
			if !m.Allows(code, position) {
				sub++
			}
			next[i] = min(sub, col[i]+1, next[i-1]+1)
		}
		col, next = next, col
		d[t] = col[size]
	}
	return d
}

// bestSpan picks the length with the fewest errors, preferring lengths
// closest to the motif size and then the shorter one
func bestSpan(d []int, size int) (int, int) {
	best := 0
	for t := 1; t < len(d); t++ {
		switch {
		case d[t] < d[best]:
			best = t
		case d[t] == d[best]:
			if dt, db := abs(t-size), abs(best-size); dt < db {
				best = t
			}
		}
	}
	return best, d[best]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// refineStart finds the start of the best alignment that ends exactly at end
func refineStart(m *motif.Motif, maxErrors int, seq sequence.Sequence, end int) (int, int) {
	span := min(end, m.Size()+maxErrors)
	t, errors := bestSpan(anchoredDistances(m, seq, end, -1, span), m.Size())
	return end - t, errors
}

// refineEnd finds the end of the best alignment that starts exactly at start
func refineEnd(m *motif.Motif, maxErrors int, seq sequence.Sequence, start int) (int, int) {
	span := min(seq.Size()-start, m.Size()+maxErrors)
	t, errors := bestSpan(anchoredDistances(m, seq, start, 1, span), m.Size())
	return start + t, errors
}

// siteSet packs short nucleotide sites and keeps the rest as strings
type siteSet struct {
	short *sequence.ShortSet
	long  map[string]struct{}
}

func newSiteSet() *siteSet {
	return &siteSet{short: sequence.NewShortSet(), long: make(map[string]struct{})}
}

// add reports whether site was not already present
func (s *siteSet) add(site sequence.Sequence) bool {
	if added, err := s.short.Add(site); err == nil {
		return added
	}
	key := site.String()
	if _, ok := s.long[key]; ok {
		return false
	}
	s.long[key] = struct{}{}
	return true
}

// ScanRecord reports the hits of every compiled motif in one record, in
// motif order, then strand and frame, then position
func ScanRecord(compiled []motifset.Compiled, record fasta.Record, opts Options) ([]Hit, error) {
	cache := make(map[*alphabet.Alphabet][]target, 2)
	var hits []Hit
	for _, c := range compiled {
		a := c.Pattern.Motif().Alphabet()
		ts, ok := cache[a]
		if !ok {
			var err error
			if ts, err = targets(record, a, opts); err != nil {
				return nil, err
			}
			cache[a] = ts
		}

		var seen *siteSet
		if opts.Unique {
			seen = newSiteSet()
		}
		for _, t := range ts {
			matches, err := scan(c, t.seq)
			if err != nil {
				return nil, fmt.Errorf("record %s, motif %s: %w", record.ID, c.Name, err)
			}
			for _, m := range matches {
				site, err := t.seq.Range(m.start, m.end)
				if err != nil {
					return nil, err
				}
				if seen != nil && !seen.add(site) {
					continue
				}
				start, end := t.toForward(m.start, m.end)
				hits = append(hits, Hit{
					Record:    record.ID,
					Idx:       record.Idx,
					Motif:     c.Name,
					Strand:    t.strand,
					Frame:     t.frame,
					Start:     start,
					End:       end,
					Errors:    m.errors,
					Score:     m.score,
					ScoreCost: m.cost,
					Scored:    m.scored,
					Site:      site.String(),
				})
			}
		}
	}
	return hits, nil
}

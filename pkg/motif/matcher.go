package motif

import "github.com/virus-evolution/gomotif/pkg/sequence"

// NoMatch is returned by FindNext once the scan range is exhausted
const NoMatch = -1

// Matcher is a single-use cursor over one target range
type Matcher interface {
	// FindNext returns the next match position or NoMatch
	FindNext() int
	// NumberOfErrors is the error count of the last match
	NumberOfErrors() int
}

// ScoredMatcher is a Matcher that can bit-score its current match.
// 2^-score roughly approximates the probability of a random match.
type ScoredMatcher interface {
	Matcher
	BitScore() (float64, error)
	// BitScoreCost is the maximal bit-score of the motif minus BitScore
	BitScoreCost() (float64, error)
}

// matcher drives a primary automaton, gated by an optional secondary
// automaton checking exact positions in lockstep
type matcher struct {
	main      stateIterator
	secondary stateIterator
}

func (m *matcher) FindNext() int {
	for m.main.next() {
		if m.secondary != nil {
			m.secondary.next()
			if !m.secondary.matched() {
				continue
			}
		}
		if m.main.matched() {
			return m.main.position()
		}
	}
	return NoMatch
}

func (m *matcher) NumberOfErrors() int { return m.main.errs() }

// scoredMatcher scores matches of automata without indels, where the
// matched window is exactly size symbols starting at position()
type scoredMatcher struct {
	matcher
	pattern *BitapPattern
	seq     sequence.Sequence
}

func (m *scoredMatcher) BitScore() (float64, error) {
	if !m.main.matched() {
		return 0, ErrNoMatch
	}
	mo := m.pattern.motif
	a := mo.alphabet
	costs := CostArray(a)
	basic := byte(a.BasicSize())
	score := 0.0
	for i, j := m.main.position(), 0; j < mo.size; i, j = i+1, j+1 {
		code := m.seq.CodeAt(i)
		switch {
		case !mo.Allows(code, j):
			score += m.pattern.mismatchScore[j]
		case code < basic:
			score += m.pattern.matchScore[j]
		default:
			// wildcard in the target: score by the wider set
			widest := max(a.CodeToWildcard(code).BasicSize(), mo.AllowedBasicCodes(j))
			score -= costs[widest-1]
		}
	}
	return score, nil
}

func (m *scoredMatcher) BitScoreCost() (float64, error) {
	score, err := m.BitScore()
	if err != nil {
		return 0, err
	}
	return m.pattern.motif.matchBitScore - score, nil
}

package motif

import "math"

const window = 3

// Filter removes the adjacent echo hits an indel-tolerant automaton reports
// for a single alignment. It keeps a window of three raw hits and emits the
// middle one unless an adjacent neighbour explains it with one error less.
type Filter struct {
	nested    Matcher
	scored    ScoredMatcher
	positions [window]int
	errors    [window]int
	score     [window]float64
	cost      [window]float64
}

// NewFilter wraps nested. It consumes the first raw hit immediately.
func NewFilter(nested Matcher) *Filter {
	f := &Filter{nested: nested}
	f.scored, _ = nested.(ScoredMatcher)
	for i := 0; i < window; i++ {
		f.positions[i] = NoMatch
		f.errors[i] = -1
		f.score[i] = math.NaN()
		f.cost[i] = math.NaN()
	}
	f.advance()
	return f
}

func (f *Filter) advance() {
	copy(f.positions[:], f.positions[1:])
	copy(f.errors[:], f.errors[1:])
	copy(f.score[:], f.score[1:])
	copy(f.cost[:], f.cost[1:])

	last := window - 1
	pos := f.nested.FindNext()
	f.positions[last] = pos
	if pos == NoMatch {
		f.errors[last] = -1
		f.score[last] = math.NaN()
		f.cost[last] = math.NaN()
		return
	}
	f.errors[last] = f.nested.NumberOfErrors()
	if f.scored != nil {
		// a match is current, so neither call can fail
		f.score[last], _ = f.scored.BitScore()
		f.cost[last], _ = f.scored.BitScoreCost()
	}
}

func (f *Filter) FindNext() int {
	for {
		f.advance()
		p, e := f.positions, f.errors
		if p[0] != NoMatch && abs(p[0]-p[1]) == 1 && e[0]+1 == e[1] {
			continue
		}
		if p[2] != NoMatch && abs(p[1]-p[2]) == 1 && e[1] == e[2]+1 {
			continue
		}
		return p[1]
	}
}

func (f *Filter) NumberOfErrors() int { return f.errors[1] }

func (f *Filter) BitScore() (float64, error) {
	if f.scored == nil {
		return 0, ErrNoScore
	}
	return f.score[1], nil
}

func (f *Filter) BitScoreCost() (float64, error) {
	if f.scored == nil {
		return 0, ErrNoScore
	}
	return f.cost[1], nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

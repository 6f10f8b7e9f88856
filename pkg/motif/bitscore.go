package motif

import (
	"math"
	"sync"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
)

type scoreTables struct {
	ln   []float64
	cost []float64
}

var (
	tablesMu sync.RWMutex
	tables   = map[*alphabet.Alphabet]*scoreTables{}
)

func init() {
	for _, a := range []*alphabet.Alphabet{alphabet.Nucleotide, alphabet.AminoAcid} {
		tables[a] = newScoreTables(a)
	}
}

func newScoreTables(a *alphabet.Alphabet) *scoreTables {
	n := a.BasicSize()
	t := &scoreTables{ln: make([]float64, n), cost: make([]float64, n)}
	for i := range t.ln {
		t.ln[i] = math.Log2(float64(i + 1))
	}
	for i := range t.cost {
		t.cost[i] = t.ln[n-1] - t.ln[i]
	}
	return t
}

func tablesFor(a *alphabet.Alphabet) *scoreTables {
	tablesMu.RLock()
	t, ok := tables[a]
	tablesMu.RUnlock()
	if ok {
		return t
	}
	tablesMu.Lock()
	defer tablesMu.Unlock()
	if t, ok = tables[a]; !ok {
		t = newScoreTables(a)
		tables[a] = t
	}
	return t
}

// LnArray returns a table with array[i-1] = log2(i) and length
// a.BasicSize(). The last element is the maximal cost. The table is shared
// and must not be modified.
func LnArray(a *alphabet.Alphabet) []float64 {
	return tablesFor(a).ln
}

// CostArray returns a table with array[i-1] = log2(a.BasicSize()) - log2(i),
// the information lost by allowing i distinct basic codes at a position.
// array[0] is the maximal cost. The table is shared and must not be
// modified.
func CostArray(a *alphabet.Alphabet) []float64 {
	return tablesFor(a).cost
}

// MaxCost is the bit-cost of a fully specified position
func MaxCost(a *alphabet.Alphabet) float64 {
	return CostArray(a)[0]
}

// Cost is the bit-cost of allowing allowedBasicCodes distinct basic codes
func Cost(a *alphabet.Alphabet, allowedBasicCodes int) float64 {
	return CostArray(a)[allowedBasicCodes-1]
}

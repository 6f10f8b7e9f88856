package alphabet

import (
	"errors"
	"strings"
	"sync"
)

// standard genetic code, codons ordered TTT, TTC, TTA, TTG, TCT, ...
const standardCode = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

var (
	codonOnce sync.Once
	codonDict map[string]string
)

func baseIndex(b byte) int {
	switch b {
	case 'T':
		return 0
	case 'C':
		return 1
	case 'A':
		return 2
	case 'G':
		return 3
	}
	return -1
}

// MakeCodonDict returns a map from codon (string) to amino acid code (string).
// Codons with ambiguous nucleotides are included if they can only possibly
// represent one amino acid.
func MakeCodonDict() map[string]string {
	codonOnce.Do(func() {
		codonDict = buildCodonDict()
	})
	out := make(map[string]string, len(codonDict))
	for k, v := range codonDict {
		out[k] = v
	}
	return out
}

func buildCodonDict() map[string]string {
	syms := Nucleotide.symbols
	dict := make(map[string]string)
	codon := make([]byte, 3)
	for _, s1 := range syms {
		for _, s2 := range syms {
			for _, s3 := range syms {
				codon[0], codon[1], codon[2] = s1, s2, s3
				if aa, ok := resolveCodon(codon); ok {
					dict[string(codon)] = string(aa)
				}
			}
		}
	}
	return dict
}

// resolveCodon expands every ambiguity code in the codon and returns the
// amino acid if all expansions agree
func resolveCodon(codon []byte) (byte, bool) {
	var aa byte
	w0 := Nucleotide.CodeToWildcard(Nucleotide.codes[codon[0]])
	w1 := Nucleotide.CodeToWildcard(Nucleotide.codes[codon[1]])
	w2 := Nucleotide.CodeToWildcard(Nucleotide.codes[codon[2]])
	for i := 0; i < w0.BasicSize(); i++ {
		b0 := baseIndex(Nucleotide.symbols[w0.BasicMatchingCode(i)])
		for j := 0; j < w1.BasicSize(); j++ {
			b1 := baseIndex(Nucleotide.symbols[w1.BasicMatchingCode(j)])
			for k := 0; k < w2.BasicSize(); k++ {
				b2 := baseIndex(Nucleotide.symbols[w2.BasicMatchingCode(k)])
				t := standardCode[16*b0+4*b1+b2]
				if aa == 0 {
					aa = t
				} else if aa != t {
					return 0, false
				}
			}
		}
	}
	return aa, true
}

// Translate a nucleotide sequence to a protein sequence. Codons which
// cannot be resolved to a single amino acid translate to X.
func Translate(nuc string) (string, error) {
	if len(nuc)%3 != 0 {
		return "", errors.New("nucleotide string not divisible by 3")
	}
	codonOnce.Do(func() {
		codonDict = buildCodonDict()
	})
	nuc = strings.ToUpper(nuc)
	var translation strings.Builder
	translation.Grow(len(nuc) / 3)
	for i := 0; i+3 <= len(nuc); i += 3 {
		if t, ok := codonDict[nuc[i:i+3]]; ok {
			translation.WriteString(t)
		} else {
			translation.WriteByte('X')
		}
	}
	return translation.String(), nil
}

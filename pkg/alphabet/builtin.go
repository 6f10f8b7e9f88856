package alphabet

import (
	"github.com/virus-evolution/gomotif/pkg/encoding"
)

const (
	nucleotideBasic  = "AGCT"
	nucleotideWild   = "NRYSWKMBDHV"
	aminoAcidBasic   = "ACDEFGHIKLMNPQRSTVWY*"
	aminoAcidResidue = "ACDEFGHIKLMNPQRSTVWY"
)

// Nucleotide is the IUPAC nucleotide alphabet: A=0, G=1, C=2, T=3, then the
// ambiguity codes N R Y S W K M B D H V
var Nucleotide = mustAlphabet(newNucleotide())

// AminoAcid is the 20 standard residues plus stop (*) as basic codes, with
// the ambiguity codes X (any residue), B (D/N), Z (E/Q) and J (I/L)
var AminoAcid = mustAlphabet(newAlphabet("aminoacid", aminoAcidBasic, []string{
	"X" + aminoAcidResidue,
	"BDN",
	"ZEQ",
	"JIL",
}))

// newNucleotide derives the wildcard sets from the bit-level coding scheme
func newNucleotide() (*Alphabet, error) {
	byteDict := encoding.MakeByteDict()
	nibble := map[byte]uint8{'A': 8, 'G': 4, 'C': 2, 'T': 1}

	ambiguous := make([]string, 0, len(nucleotideWild))
	for i := 0; i < len(nucleotideWild); i++ {
		sym := nucleotideWild[i]
		set := encoding.BaseSet(byteDict[rune(sym)])
		def := []byte{sym}
		for j := 0; j < len(nucleotideBasic); j++ {
			if set&nibble[nucleotideBasic[j]] != 0 {
				def = append(def, nucleotideBasic[j])
			}
		}
		ambiguous = append(ambiguous, string(def))
	}

	a, err := newAlphabet("nucleotide", nucleotideBasic, ambiguous)
	if err != nil {
		return nil, err
	}

	nucDict := encoding.MakeNucDict()
	a.complement = make([]byte, a.Size())
	for code, sym := range a.symbols {
		comp := nucDict[encoding.Complement(byteDict[rune(sym)])]
		a.complement[code] = a.codes[comp[0]]
	}

	return a, nil
}

// Package fasta reads and writes fasta records and converts them to
// sequences over an alphabet
package fasta

import (
	"fmt"
	"strings"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/sequence"
)

// A struct for one Fasta record. Idx is the record's position in its input.
type Record struct {
	ID          string
	Description string
	Seq         string
	Idx         int
}

// Degap strips alignment gaps from a Record's sequence, returning a new Record
func (FR Record) Degap() Record {
	NFR := FR
	if strings.IndexByte(FR.Seq, '-') >= 0 {
		NFR.Seq = strings.ReplaceAll(FR.Seq, "-", "")
	}
	return NFR
}

// Sequence parses a Record's (degapped) sequence over alphabet a
func (FR Record) Sequence(a *alphabet.Alphabet) (sequence.Sequence, error) {
	seq, err := sequence.New(a, FR.Degap().Seq)
	if err != nil {
		return sequence.Sequence{}, fmt.Errorf("record %s: %w", FR.ID, err)
	}
	return seq, nil
}

/*
Package genbank reads the sequences of genbank flat format files so that
they can be searched like fasta records
*/
package genbank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/virus-evolution/gomotif/pkg/fasta"
)

var (
	errNoOrigin     = errors.New("genbank record has no ORIGIN sequence")
	errEmptyGenbank = errors.New("no genbank records in input")
)

// Record holds the fields of one genbank entry that name and describe its sequence
type Record struct {
	Locus      string
	Accession  string
	Version    string
	Definition string
	Origin     []byte
}

// ID is the versioned accession, falling back to the accession then the locus name
func (gb Record) ID() string {
	switch {
	case gb.Version != "":
		return gb.Version
	case gb.Accession != "":
		return gb.Accession
	}
	return gb.Locus
}

// ToFasta converts the record to a fasta.Record numbered idx
func (gb Record) ToFasta(idx int) fasta.Record {
	id := gb.ID()
	description := id
	if gb.Definition != "" {
		description += " " + gb.Definition
	}
	return fasta.Record{ID: id, Description: description, Seq: string(gb.Origin), Idx: idx}
}

// Reader reads "//" terminated genbank records one at a time
type Reader struct {
	s *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{s: s}
}

// firstField returns the first whitespace separated field after the keyword
func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// Read returns the next record, or io.EOF when the input is exhausted
func (r *Reader) Read() (Record, error) {
	var gb Record
	var header string
	seen := false
	hasOrigin := false

	for r.s.Scan() {
		line := r.s.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		seen = true

		if strings.HasPrefix(line, "//") {
			if !hasOrigin {
				return Record{}, fmt.Errorf("%w: %s", errNoOrigin, gb.ID())
			}
			return gb, nil
		}

		if unicode.IsUpper(rune(line[0])) {
			header = strings.Fields(line)[0]
			switch header {
			case "LOCUS":
				gb.Locus = firstField(line)
			case "ACCESSION":
				gb.Accession = firstField(line)
			case "VERSION":
				gb.Version = firstField(line)
			case "DEFINITION":
				gb.Definition = strings.TrimSpace(strings.TrimPrefix(line, "DEFINITION"))
			case "ORIGIN":
				hasOrigin = true
			}
			continue
		}

		switch header {
		case "DEFINITION":
			gb.Definition += " " + strings.TrimSpace(line)
		case "ORIGIN":
			for _, character := range line {
				if unicode.IsLetter(character) {
					gb.Origin = append(gb.Origin, byte(unicode.ToUpper(character)))
				}
			}
		}
	}
	if err := r.s.Err(); err != nil {
		return Record{}, err
	}

	// a final record without its terminator
	if seen && hasOrigin {
		return gb, nil
	}
	if seen {
		return Record{}, fmt.Errorf("%w: %s", errNoOrigin, gb.ID())
	}
	return Record{}, io.EOF
}

// StreamRecords reads genbank records to a channel as fasta.Records,
// numbering them in input order. It passes true to cDone when the input is
// exhausted.
func StreamRecords(f io.Reader, cR chan fasta.Record, cErr chan error, cDone chan bool) {
	r := NewReader(f)
	counter := 0
	for {
		gb, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			cErr <- err
			return
		}
		cR <- gb.ToFasta(counter)
		counter++
	}
	if counter == 0 {
		cErr <- errEmptyGenbank
		return
	}
	cDone <- true
}

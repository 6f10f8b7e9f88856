package genbank

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/virus-evolution/gomotif/pkg/fasta"
)

const twoRecords = `LOCUS       MN908947               29903 bp ss-RNA     linear   VRL 18-MAR-2020
DEFINITION  Severe acute respiratory syndrome coronavirus 2 isolate Wuhan-Hu-1,
            complete genome.
ACCESSION   MN908947
VERSION     MN908947.3
FEATURES             Location/Qualifiers
     source          1..29903
                     /organism="Severe acute respiratory syndrome coronavirus 2"
ORIGIN      
        1 attaaaggtt tataccttcc caggtaacaa
//
LOCUS       short                     12 bp    DNA     linear   SYN 01-JAN-2020
ORIGIN
        1 acgtacgtac gt
//
`

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(twoRecords))

	first, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Record{
		Locus:      "MN908947",
		Accession:  "MN908947",
		Version:    "MN908947.3",
		Definition: "Severe acute respiratory syndrome coronavirus 2 isolate Wuhan-Hu-1, complete genome.",
		Origin:     []byte("ATTAAAGGTTTATACCTTCCCAGGTAACAA"),
	}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("got %+v, want %+v", first, want)
	}

	second, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if second.ID() != "short" || string(second.Origin) != "ACGTACGTACGT" {
		t.Errorf("unexpected second record: %+v", second)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderNoOrigin(t *testing.T) {
	r := NewReader(strings.NewReader("LOCUS       empty    0 bp    DNA\n//\n"))
	if _, err := r.Read(); !errors.Is(err, errNoOrigin) {
		t.Errorf("expected %v, got %v", errNoOrigin, err)
	}
}

func TestReaderUnterminated(t *testing.T) {
	r := NewReader(strings.NewReader("LOCUS       last\nORIGIN\n        1 ttgaca\n"))
	gb, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if string(gb.Origin) != "TTGACA" {
		t.Errorf("got %q", gb.Origin)
	}
}

func TestStreamRecords(t *testing.T) {
	cR := make(chan fasta.Record)
	cErr := make(chan error)
	cDone := make(chan bool)

	go StreamRecords(strings.NewReader(twoRecords), cR, cErr, cDone)

	var records []fasta.Record
	for n := 1; n > 0; {
		select {
		case record := <-cR:
			records = append(records, record)
		case err := <-cErr:
			t.Fatal(err)
		case <-cDone:
			n--
		}
	}

	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].ID != "MN908947.3" || records[0].Idx != 0 || !strings.HasPrefix(records[0].Description, "MN908947.3 Severe") {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].ID != "short" || records[1].Idx != 1 || records[1].Seq != "ACGTACGTACGT" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestStreamRecordsEmpty(t *testing.T) {
	cR := make(chan fasta.Record)
	cErr := make(chan error)
	cDone := make(chan bool)

	go StreamRecords(strings.NewReader("\n\n"), cR, cErr, cDone)

	select {
	case err := <-cErr:
		if err != errEmptyGenbank {
			t.Errorf("expected %v, got %v", errEmptyGenbank, err)
		}
	case <-cDone:
		t.Error("expected an error for empty input")
	}
}

package fasta

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
)

func TestRead(t *testing.T) {
	data := []byte(">Target1 first record\r\nATGATC\r\nAA\n>Target2\nATG-ATG\n>Target3\nATTTTC")

	r := NewReader(bytes.NewReader(data))

	want := []Record{
		{ID: "Target1", Description: "Target1 first record", Seq: "ATGATCAA"},
		{ID: "Target2", Description: "Target2", Seq: "ATG-ATG"},
		{ID: "Target3", Description: "Target3", Seq: "ATTTTC"},
	}
	for i := range want {
		record, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		if record != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, record, want[i])
		}
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF after last record, got %v", err)
	}
}

func TestReadBadlyFormed(t *testing.T) {
	r := NewReader(strings.NewReader("ATGATC\n>Target1\nATG\n"))
	if _, err := r.Read(); err != errBadlyFormedFasta {
		t.Errorf("expected %v, got %v", errBadlyFormedFasta, err)
	}
}

func TestStreamRecords(t *testing.T) {
	data := []byte(`>Target1
ATGATC
>Target2
ATGATGAA
>Target3
ATTTTC
`)

	records, err := LoadRecords(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, record := range records {
		if record.Idx != i {
			t.Errorf("record %s has Idx %d, want %d", record.ID, record.Idx, i)
		}
	}
	if records[1].Seq != "ATGATGAA" {
		t.Errorf("problem in TestStreamRecords(): %s", records[1].Seq)
	}
}

func TestStreamRecordsFinalHeader(t *testing.T) {
	records, err := LoadRecords(strings.NewReader(">Target1\nATG\n>Target2 no newline"))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	want := Record{ID: "Target2", Description: "Target2 no newline", Idx: 1}
	if records[1] != want {
		t.Errorf("got %+v, want %+v", records[1], want)
	}
}

func TestStreamRecordsEmpty(t *testing.T) {
	_, err := LoadRecords(bytes.NewReader([]byte{}))
	if err != errEmptyFasta {
		t.Errorf("expected %v, got %v", errEmptyFasta, err)
	}
}

func TestWriteRecord(t *testing.T) {
	record := Record{ID: "Target1", Description: "Target1 some description", Seq: "ATGATCGA"}

	tests := []struct {
		wrap int
		want string
	}{
		{0, ">Target1 some description\nATGATCGA\n"},
		{3, ">Target1 some description\nATG\nATC\nGA\n"},
		{4, ">Target1 some description\nATGA\nTCGA\n"},
		{100, ">Target1 some description\nATGATCGA\n"},
	}
	for _, tt := range tests {
		out := new(bytes.Buffer)
		if err := WriteRecord(out, record, tt.wrap); err != nil {
			t.Fatal(err)
		}
		if out.String() != tt.want {
			t.Errorf("wrap %d: got %q, want %q", tt.wrap, out.String(), tt.want)
		}
	}

	out := new(bytes.Buffer)
	if err := WriteRecord(out, Record{ID: "x", Seq: "A"}, 0); err != nil {
		t.Fatal(err)
	}
	if out.String() != ">x\nA\n" {
		t.Errorf("got %q", out.String())
	}
	if err := WriteRecord(out, record, -1); err != errBadWrap {
		t.Errorf("expected %v, got %v", errBadWrap, err)
	}
}

func TestRecordSequence(t *testing.T) {
	record := Record{ID: "Target1", Seq: "at-gN"}
	seq, err := record.Sequence(alphabet.Nucleotide)
	if err != nil {
		t.Fatal(err)
	}
	if seq.String() != "ATGN" {
		t.Errorf("got %s", seq.String())
	}

	record.Seq = "ATGU"
	if _, err := record.Sequence(alphabet.Nucleotide); err == nil {
		t.Error("expected an error for an invalid symbol")
	} else if !strings.Contains(err.Error(), "Target1") {
		t.Errorf("error does not name the record: %v", err)
	}

	if record.Degap().Seq != "ATGU" {
		t.Error("problem in Degap()")
	}
}

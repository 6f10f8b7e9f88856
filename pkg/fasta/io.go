package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var (
	errBadlyFormedFasta = errors.New("badly formed fasta file")
	errEmptyFasta       = errors.New("empty fasta file")
	errBadWrap          = errors.New("line wrap must not be negative")
)

type Reader struct {
	*bufio.Reader
}

func NewReader(f io.Reader) *Reader {
	return &Reader{bufio.NewReader(f)}
}

// trimNewline strips a trailing unix or dos newline
func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

// Read reads one fasta record from the underlying reader. The final record is
// returned with error = nil, and the next call to Read() returns an empty Record
// struct and error = io.EOF.
func (r *Reader) Read() (Record, error) {
	// a header without a trailing newline can come with io.EOF
	header, err := r.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(header) == 0) {
		return Record{}, err
	}
	if header[0] != '>' {
		return Record{}, errBadlyFormedFasta
	}
	header = trimNewline(header)
	fields := bytes.Fields(header[1:])
	if len(fields) == 0 {
		return Record{}, errBadlyFormedFasta
	}
	FR := Record{ID: string(fields[0]), Description: string(header[1:])}

	var buffer []byte
	for {
		peek, err := r.Peek(1)
		if err == io.EOF || (err == nil && peek[0] == '>') {
			break
		}
		if err != nil {
			return Record{}, err
		}
		// io.EOF without a final newline is caught by the next Peek
		line, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		buffer = append(buffer, trimNewline(line)...)
	}
	FR.Seq = string(buffer)

	return FR, nil
}

// StreamRecords reads fasta records to a channel, numbering them in input
// order. It passes true to cDone when the input is exhausted.
func StreamRecords(f io.Reader, cR chan Record, cErr chan error, cDone chan bool) {
	r := NewReader(f)
	counter := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			cErr <- err
			return
		}
		record.Idx = counter
		cR <- record
		counter++
	}
	if counter == 0 {
		cErr <- errEmptyFasta
		return
	}
	cDone <- true
}

// LoadRecords is as StreamRecords but returns a slice of Records
func LoadRecords(f io.Reader) ([]Record, error) {
	cR := make(chan Record)
	cErr := make(chan error)
	cDone := make(chan bool)
	records := make([]Record, 0)

	go StreamRecords(f, cR, cErr, cDone)

	for n := 1; n > 0; {
		select {
		case record := <-cR:
			records = append(records, record)
		case err := <-cErr:
			return make([]Record, 0), err
		case <-cDone:
			n--
		}
	}

	return records, nil
}

// WriteRecord writes one record with its full description as the header.
// Sequence lines are wrapped to wrap characters, or not wrapped if wrap is 0.
func WriteRecord(w io.Writer, record Record, wrap int) error {
	if wrap < 0 {
		return errBadWrap
	}
	header := record.Description
	if header == "" {
		header = record.ID
	}
	if _, err := io.WriteString(w, ">"+header+"\n"); err != nil {
		return err
	}
	seq := record.Seq
	if wrap == 0 {
		_, err := io.WriteString(w, seq+"\n")
		return err
	}
	for written := 0; written < len(seq); written += wrap {
		end := min(written+wrap, len(seq))
		if _, err := io.WriteString(w, seq[written:end]+"\n"); err != nil {
			return err
		}
	}
	return nil
}

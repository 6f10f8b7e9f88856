// Package sam streams read sequences out of SAM and BAM files so they can be
// searched like fasta records
package sam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/hts/bam"
	biogosam "github.com/biogo/hts/sam"
	log "github.com/sirupsen/logrus"

	"github.com/virus-evolution/gomotif/pkg/fasta"
)

var (
	errUnknownFormat = errors.New("unknown alignment format")
	errNoReads       = errors.New("no reads with sequences in input")
)

// recordReader is satisfied by both the sam and the bam readers
type recordReader interface {
	Read() (*biogosam.Record, error)
}

// plainSAM has nothing to release once reading stops
type plainSAM struct {
	*biogosam.Reader
}

func (plainSAM) Close() error { return nil }

// isBAM checks for the gzip magic that starts every BGZF file
func isBAM(r *bufio.Reader) bool {
	magic, err := r.Peek(2)
	return err == nil && magic[0] == 0x1f && magic[1] == 0x8b
}

func newRecordReader(in io.Reader, format string) (recordReader, io.Closer, error) {
	br := bufio.NewReader(in)
	switch strings.ToLower(format) {
	case "", "auto":
		if isBAM(br) {
			return newRecordReader(br, "bam")
		}
		return newRecordReader(br, "sam")
	case "sam":
		s, err := biogosam.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		p := plainSAM{s}
		return p, p, nil
	case "bam":
		b, err := bam.NewReader(br, 1)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// StreamReads reads SAM or BAM records (format "sam", "bam" or "auto") and
// passes each primary record's read sequence to cR as a fasta.Record named
// after the read. Secondary and supplementary alignments, and records
// without a stored sequence, are skipped.
func StreamReads(in io.Reader, format string, cR chan fasta.Record, cErr chan error, cDone chan bool) {
	rr, closer, err := newRecordReader(in, format)
	if err != nil {
		cErr <- err
		return
	}
	defer closer.Close()

	var counter, skipped int
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			cErr <- err
			return
		}
		if rec.Flags&(biogosam.Secondary|biogosam.Supplementary) != 0 {
			log.Debugf("ignoring secondary or supplementary mapping: %s", rec.Name)
			skipped++
			continue
		}
		if rec.Seq.Length == 0 {
			log.Debugf("skipping read without sequence: %s", rec.Name)
			skipped++
			continue
		}
		description := rec.Name
		if rec.Flags&biogosam.Reverse != 0 {
			description += " reverse"
		}
		cR <- fasta.Record{
			ID:          rec.Name,
			Description: description,
			Seq:         string(rec.Seq.Expand()),
			Idx:         counter,
		}
		counter++
	}
	if skipped > 0 {
		log.Infof("skipped %d alignment records", skipped)
	}
	if counter == 0 {
		cErr <- errNoReads
		return
	}
	cDone <- true
}

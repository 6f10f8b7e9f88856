package search

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/virus-evolution/gomotif/pkg/fasta"
)

var errBadFormat = errors.New("unknown output format")

const tsvHeader = "record\tmotif\tstrand\tframe\tstart\tend\terrors\tscore\tscore_cost\tsite"

func formatScore(h Hit, v float64) string {
	if !h.Scored {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// TSV renders the hit as one tab separated row, without a newline
func (h Hit) TSV() string {
	return strings.Join([]string{
		h.Record,
		h.Motif,
		string(h.Strand),
		strconv.Itoa(h.Frame),
		strconv.Itoa(h.Start),
		strconv.Itoa(h.End),
		strconv.Itoa(h.Errors),
		formatScore(h, h.Score),
		formatScore(h, h.ScoreCost),
		h.Site,
	}, "\t")
}

// FastaRecord renders the matched site as a fasta record
func (h Hit) FastaRecord() fasta.Record {
	id := fmt.Sprintf("%s:%d-%d(%c)", h.Record, h.Start, h.End, h.Strand)
	desc := fmt.Sprintf("%s motif=%s errors=%d", id, h.Motif, h.Errors)
	if h.Frame > 0 {
		desc += " frame=" + strconv.Itoa(h.Frame)
	}
	return fasta.Record{ID: id, Description: desc, Seq: h.Site, Idx: h.Idx}
}

func checkFormat(format string) error {
	switch format {
	case "", FormatTSV, FormatFasta:
		return nil
	}
	return fmt.Errorf("%w: %q", errBadFormat, format)
}

func writeHeader(w *bufio.Writer, opts Options) error {
	if opts.Format == FormatFasta {
		return nil
	}
	_, err := w.WriteString(tsvHeader + "\n")
	return err
}

func writeHit(w *bufio.Writer, h Hit, opts Options) error {
	if opts.Format == FormatFasta {
		return fasta.WriteRecord(w, h.FastaRecord(), opts.Wrap)
	}
	_, err := w.WriteString(h.TSV() + "\n")
	return err
}

package search

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"

	"github.com/virus-evolution/gomotif/pkg/fasta"
	"github.com/virus-evolution/gomotif/pkg/motifset"
)

// Source streams records to cR, then signals cDone, or sends one error to cErr
type Source func(cR chan fasta.Record, cErr chan error, cDone chan bool)

// Summary counts what a Run found
type Summary struct {
	Records int
	Hits    int
	// hits per motif name
	PerMotif map[string]int
	// largest number of hits in one record
	MostInRecord int
}

type recordHits struct {
	idx  int
	hits []Hit
}

func gmax[T constraints.Ordered](s []T) T {
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Log reports the summary at info level
func (s Summary) Log() {
	log.WithFields(log.Fields{
		"records": humanize.Comma(int64(s.Records)),
		"hits":    humanize.Comma(int64(s.Hits)),
	}).Info("search finished")
	for name, n := range s.PerMotif {
		log.Debugf("motif %s: %s hits", name, humanize.Comma(int64(n)))
	}
	if s.Hits > 0 {
		log.Debugf("most hits in one record: %s", humanize.Comma(int64(s.MostInRecord)))
	}
}

// Run scans every record from source with the compiled motifs using
// opts.Threads workers, and writes the hits to w in input order
func Run(ctx context.Context, source Source, compiled []motifset.Compiled, w io.Writer, opts Options) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	if err := checkFormat(opts.Format); err != nil {
		return Summary{}, err
	}
	if len(compiled) == 0 {
		return Summary{}, motifset.ErrNoMotifs
	}
	threads := max(1, opts.Threads)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cR := make(chan fasta.Record, threads)
	// every goroutine sends at most one error
	cErr := make(chan error, threads+2)
	cReadDone := make(chan bool, 1)

	cHits := make(chan recordHits, threads)
	cScanDone := make(chan bool, 1)
	cWriteDone := make(chan Summary, 1)

	go writeHits(ctx, w, opts, cHits, cWriteDone, cErr)

	// cR is closed once the source returns, whichever way it ends
	go func() {
		source(cR, cErr, cReadDone)
		close(cR)
	}()

	var wgScan sync.WaitGroup
	wgScan.Add(threads)

	for n := 0; n < threads; n++ {
		go func() {
			scanRecords(ctx, compiled, opts, cR, cHits, cErr)
			wgScan.Done()
		}()
	}

	go func() {
		wgScan.Wait()
		cScanDone <- true
	}()

	// unblock a source still sending after the workers have gone
	drain := func() {
		go func() {
			for range cR {
			}
		}()
	}

	for n := 1; n > 0; {
		select {
		case err := <-cErr:
			drain()
			return Summary{}, err
		case <-ctx.Done():
			drain()
			return Summary{}, ctx.Err()
		case <-cReadDone:
			n--
		}
	}

	for n := 1; n > 0; {
		select {
		case err := <-cErr:
			return Summary{}, err
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		case <-cScanDone:
			close(cHits)
			n--
		}
	}

	var summary Summary
	for n := 1; n > 0; {
		select {
		case err := <-cErr:
			return Summary{}, err
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		case summary = <-cWriteDone:
			n--
		}
	}

	return summary, nil
}

func scanRecords(ctx context.Context, compiled []motifset.Compiled, opts Options, cR chan fasta.Record, cHits chan recordHits, cErr chan error) {
	for record := range cR {
		if ctx.Err() != nil {
			return
		}
		hits, err := ScanRecord(compiled, record, opts)
		if err != nil {
			cErr <- err
			return
		}
		select {
		case cHits <- recordHits{idx: record.Idx, hits: hits}:
		case <-ctx.Done():
			return
		}
	}
}

// writeHits buffers out of order results until the next record index arrives
func writeHits(ctx context.Context, w io.Writer, opts Options, cHits chan recordHits, cDone chan Summary, cErr chan error) {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, opts); err != nil {
		cErr <- err
		return
	}

	summary := Summary{PerMotif: make(map[string]int)}
	perRecord := make([]int, 0)
	pending := make(map[int]recordHits)
	counter := 0

	for {
		var rh recordHits
		var ok bool
		select {
		case rh, ok = <-cHits:
		case <-ctx.Done():
			return
		}
		if !ok {
			break
		}
		pending[rh.idx] = rh
		for {
			next, ok := pending[counter]
			if !ok {
				break
			}
			for _, h := range next.hits {
				if err := writeHit(bw, h, opts); err != nil {
					cErr <- err
					return
				}
				summary.PerMotif[h.Motif]++
			}
			perRecord = append(perRecord, len(next.hits))
			summary.Hits += len(next.hits)
			delete(pending, counter)
			counter++
		}
	}

	if err := bw.Flush(); err != nil {
		cErr <- err
		return
	}

	summary.Records = counter
	if len(perRecord) > 0 {
		summary.MostInRecord = gmax(perRecord)
	}
	cDone <- summary
}

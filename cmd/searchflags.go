package cmd

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gomotif/pkg/motifset"
	"github.com/virus-evolution/gomotif/pkg/search"
)

// searchFlags are shared by every command that scans records for motifs
type searchFlags struct {
	motif     string
	motifs    string
	mode      string
	alphabet  string
	maxErrors int
	minScore  float64
	both      bool
	frames    bool
	unique    bool
	threads   int
	format    string
	wrap      int
	outfile   string
}

func addSearchFlags(cmd *cobra.Command, sf *searchFlags) {
	cmd.Flags().StringVarP(&sf.motif, "motif", "m", "", "A single motif. Upper case positions must match exactly")
	cmd.Flags().StringVarP(&sf.motifs, "motifs", "", "", "YAML file of named motifs")
	cmd.Flags().StringVarP(&sf.mode, "mode", "", "", "Search mode: exact, substitution, indel-last or indel-first (default from config, else substitution)")
	cmd.Flags().StringVarP(&sf.alphabet, "alphabet", "a", "", "Motif alphabet: nucleotide or aminoacid (default from config, else nucleotide)")
	cmd.Flags().IntVarP(&sf.maxErrors, "max-errors", "k", 1, "Maximum number of errors per match")
	cmd.Flags().Float64VarP(&sf.minScore, "min-score", "", 0.0, "Only report exact and substitution matches with at least this bit-score")
	cmd.Flags().BoolVarP(&sf.both, "both-strands", "", false, "Also search the reverse complement of each sequence")
	cmd.Flags().BoolVarP(&sf.frames, "frames", "", false, "Translate nucleotide sequences in three frames for amino acid motifs")
	cmd.Flags().BoolVarP(&sf.unique, "unique", "", false, "Report each distinct site once per sequence and motif")
	cmd.Flags().IntVarP(&sf.threads, "threads", "t", 1, "Number of threads to use (default from config)")
	cmd.Flags().StringVarP(&sf.format, "format", "f", search.FormatTSV, "Output format: tsv or fasta")
	cmd.Flags().IntVarP(&sf.wrap, "wrap", "w", 0, "Line width of fasta output, 0 for no wrapping")
	cmd.Flags().StringVarP(&sf.outfile, "outfile", "o", "stdout", "Output to write")

	cmd.MarkFlagsMutuallyExclusive("motif", "motifs")
	cmd.Flags().SortFlags = false
}

// compile merges the flags with the loaded config and compiles the motifs
func (sf *searchFlags) compile(cmd *cobra.Command) ([]motifset.Compiled, error) {
	var (
		set *motifset.Set
		err error
	)
	switch {
	case sf.motifs != "":
		if set, err = motifset.LoadFile(sf.motifs); err != nil {
			return nil, err
		}
	case sf.motif != "":
		set = motifset.Single(sf.motif)
	default:
		return nil, errors.New("one of --motif or --motifs is required")
	}

	d := motifset.Defaults{
		Alphabet:  cfg.Search.Alphabet,
		Mode:      cfg.Search.Mode,
		MaxErrors: cfg.Search.MaxErrors,
		MinScore:  cfg.Search.MinScore,
	}
	if cmd.Flags().Changed("alphabet") {
		d.Alphabet = sf.alphabet
	}
	if cmd.Flags().Changed("mode") {
		d.Mode = sf.mode
	}
	if cmd.Flags().Changed("max-errors") {
		d.MaxErrors = sf.maxErrors
	}
	if cmd.Flags().Changed("min-score") {
		d.MinScore = &sf.minScore
	}

	compiled, err := set.Compile(d)
	if err != nil {
		return nil, err
	}
	for _, c := range compiled {
		log.Debugf("motif %s: %s, mode %s, up to %d errors", c.Name, c.Motif, c.Mode, c.MaxErrors)
	}
	return compiled, nil
}

func (sf *searchFlags) options(cmd *cobra.Command) search.Options {
	opts := search.Options{
		BothStrands: cfg.Search.BothStrands,
		Frames:      sf.frames,
		Unique:      sf.unique,
		Threads:     cfg.Search.Threads,
		Format:      sf.format,
		Wrap:        sf.wrap,
	}
	if cmd.Flags().Changed("both-strands") {
		opts.BothStrands = sf.both
	}
	if cmd.Flags().Changed("threads") {
		opts.Threads = sf.threads
	}
	return opts
}

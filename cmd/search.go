package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virus-evolution/gomotif/pkg/fasta"
	"github.com/virus-evolution/gomotif/pkg/genbank"
	"github.com/virus-evolution/gomotif/pkg/gfio"
	"github.com/virus-evolution/gomotif/pkg/search"
)

var searchInput string
var searchInputFormat string
var searchSettings searchFlags

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchInput, "input", "i", "stdin", "Sequences to search")
	searchCmd.Flags().StringVarP(&searchInputFormat, "input-format", "", "fasta", "Format of --input: fasta or genbank")
	addSearchFlags(searchCmd, &searchSettings)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find motifs in fasta or genbank sequences",
	Long: `Find motifs in fasta or genbank sequences

Example usage:
	gomotif search -i genomes.fasta -m tTGACa -k 1 -o hits.tsv
	gomotif search -i genomes.fasta --motifs motifs.yaml --both-strands

A motif file looks like this:

	motifs:
	  - name: adapter
	    pattern: aGATCGGAAGAGc
	    mode: substitution
	    max_errors: 2
	  - name: nsp
	    pattern: MKKLL
	    alphabet: aminoacid

Fields left out of an entry fall back to the command line flags, then to the
config file. Upper case positions must match exactly and are not allowed in the
indel modes.

The output is a tsv file with one line per hit and the columns record, motif,
strand, frame, start, end, errors, score, score_cost and site. Start and end are
0-based and end exclusive in forward strand coordinates. The scores are NA in the
indel modes. With --format fasta, each matched site is written as a record instead.

Genbank files (--input-format genbank) are searched record by record, using the
ORIGIN sequence and naming hits after the VERSION, ACCESSION or LOCUS.

If input and output files are not specified, the behaviour is to read from stdin
and write to stdout, e.g.:
	cat genomes.fasta | gomotif search -m acgt > hits.tsv`,

	RunE: func(cmd *cobra.Command, args []string) (err error) {

		compiled, err := searchSettings.compile(cmd)
		if err != nil {
			return err
		}

		in, err := gfio.OpenIn(*cmd.Flag("input"))
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		var source search.Source
		switch searchInputFormat {
		case "fasta":
			source = func(cR chan fasta.Record, cErr chan error, cDone chan bool) {
				fasta.StreamRecords(in, cR, cErr, cDone)
			}
		case "genbank", "gb":
			source = func(cR chan fasta.Record, cErr chan error, cDone chan bool) {
				genbank.StreamRecords(in, cR, cErr, cDone)
			}
		default:
			return fmt.Errorf("unknown input format %q", searchInputFormat)
		}

		summary, err := search.Run(cmd.Context(), source, compiled, out, searchSettings.options(cmd))
		if err != nil {
			return err
		}
		summary.Log()

		return
	},
}

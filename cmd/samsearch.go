package cmd

import (
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gomotif/pkg/fasta"
	"github.com/virus-evolution/gomotif/pkg/gfio"
	"github.com/virus-evolution/gomotif/pkg/sam"
	"github.com/virus-evolution/gomotif/pkg/search"
)

var samSearchSettings searchFlags

func init() {
	samCmd.AddCommand(samSearchCmd)

	addSearchFlags(samSearchCmd, &samSearchSettings)
}

var samSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find motifs in the reads of a sam or bam file",
	Long: `Find motifs in the reads of a sam or bam file

Example usage:
	gomotif sam search -s reads.bam -m aGATCGGAAGAGc -k 2 -o adapters.tsv

Each primary alignment's read sequence is searched as stored in the file, so
reads mapped to the reverse strand are already reverse complemented. Secondary
and supplementary alignments, and records without a sequence, are skipped.
The flags and output are as for gomotif search.`,

	RunE: func(cmd *cobra.Command, args []string) (err error) {

		compiled, err := samSearchSettings.compile(cmd)
		if err != nil {
			return err
		}

		in, err := gfio.OpenIn(*cmd.Flag("samfile"))
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		source := func(cR chan fasta.Record, cErr chan error, cDone chan bool) {
			sam.StreamReads(in, samFormat, cR, cErr, cDone)
		}

		summary, err := search.Run(cmd.Context(), source, compiled, out, samSearchSettings.options(cmd))
		if err != nil {
			return err
		}
		summary.Log()

		return
	},
}

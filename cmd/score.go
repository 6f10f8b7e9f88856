package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virus-evolution/gomotif/pkg/gfio"
	"github.com/virus-evolution/gomotif/pkg/motifset"
)

var scoreSettings searchFlags

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreSettings.motif, "motif", "m", "", "A single motif. Upper case positions must match exactly")
	scoreCmd.Flags().StringVarP(&scoreSettings.motifs, "motifs", "", "", "YAML file of named motifs")
	scoreCmd.Flags().StringVarP(&scoreSettings.alphabet, "alphabet", "a", "", "Motif alphabet: nucleotide or aminoacid (default from config, else nucleotide)")
	scoreCmd.Flags().StringVarP(&scoreSettings.mode, "mode", "", "", "Search mode the motifs are checked against")
	scoreCmd.Flags().StringVarP(&scoreSettings.outfile, "outfile", "o", "stdout", "Output to write")

	scoreCmd.MarkFlagsMutuallyExclusive("motif", "motifs")
	scoreCmd.Flags().SortFlags = false
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the per-position bit-scores of motifs",
	Long: `Show the per-position bit-scores of motifs

Example usage:
	gomotif score -m aTRn
	gomotif score --motifs motifs.yaml

For each position the table shows the allowed symbols, whether the position must
match exactly, and the bit-scores of a match and of a substitution. The footer holds
the maximal score of the motif and its average substitution penalty.`,

	RunE: func(cmd *cobra.Command, args []string) (err error) {

		compiled, err := scoreSettings.compile(cmd)
		if err != nil {
			return err
		}

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		for _, c := range compiled {
			if _, err = fmt.Fprintln(out, motifset.ScoreTable(c)); err != nil {
				return err
			}
		}

		return
	},
}

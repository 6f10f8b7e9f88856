package cmd

import (
	"github.com/spf13/cobra"
)

var samFile string
var samFormat string

func init() {
	rootCmd.AddCommand(samCmd)

	samCmd.PersistentFlags().StringVarP(&samFile, "samfile", "s", "stdin", "Sam or bam file to read. If none is specified, will read from stdin")
	samCmd.PersistentFlags().StringVarP(&samFormat, "sam-format", "", "auto", "Input format: sam, bam or auto")
}

var samCmd = &cobra.Command{
	Use:   "sam",
	Short: "Do things with sam and bam files",
	Long:  `Do things with sam and bam files`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		return nil
	},
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gomotif/pkg/config"
)

var rootConfigFile string
var rootLogLevel string

// settings loaded before any subcommand runs
var cfg *config.Config

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().StringVarP(&rootConfigFile, "config", "", "", "Config file (default is .gomotif.yaml in the working directory or $HOME)")
	rootCmd.PersistentFlags().StringVarP(&rootLogLevel, "log-level", "", "", "Log level: panic, fatal, error, warn, info, debug or trace")
}

var (
	rootCmd = &cobra.Command{
		Use:   "gomotif",
		Short: "fuzzy motif search in nucleotide and amino acid sequences",
		Long: `fuzzy motif search in nucleotide and amino acid sequences

Motifs are written with IUPAC codes. Upper case positions must match exactly,
lower case positions may carry substitutions (or indels, in the indel modes).`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {

			loaded, v, err := config.Load(rootConfigFile)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = rootLogLevel
			}
			lvl, err := log.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("%w: %q", config.ErrBadLogLevel, level)
			}
			log.SetLevel(lvl)

			if used := v.ConfigFileUsed(); used != "" {
				log.Debugf("using config file %s", used)
			}

			return nil
		},
	}
)

// Execute executes the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

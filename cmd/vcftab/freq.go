package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bozlab/vcftab/internal/batch"
	"github.com/bozlab/vcftab/internal/freq"
	"github.com/bozlab/vcftab/internal/tab"
)

func newFreqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freq [file...]",
		Short: "Compute alternative-allele frequencies from TAB files",
		Long: `Append the alternative-allele frequency to TAB files.

For each line, the FORMAT column (column 9) is searched for the AD and
DP keys and the matching values are read from the sample column
(column 10). The frequency 100*alt/depth is appended as a trailing
column formatted as a percentage. Lines that cannot be parsed, or have
zero total depth, are logged and dropped from the output.

Each input.tab produces a sibling input_freq.tab, overwriting any
existing file. With no arguments, every *.tab in the input directory
is processed.

Before running, verify that columns 9 and 10 of your input hold the
FORMAT and sample values; the column positions are fixed.`,
		Example: `  vcftab freq                      # all *.tab in the input directory
  vcftab freq --dir data/run1      # all *.tab in data/run1
  vcftab freq calls.tab            # a single file
  cat calls.tab | vcftab freq -    # stdin to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFreq(args)
		},
	}
}

func runFreq(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	calc := freq.NewCalculator()
	calc.SetLogger(logger)

	if len(args) == 1 && args[0] == "-" {
		return calc.ConvertAll(tab.NewReaderFrom(os.Stdin, "stdin"), os.Stdout)
	}

	var jobs []batch.Job
	if len(args) > 0 {
		for _, in := range args {
			jobs = append(jobs, batch.Job{In: in, Out: batch.FreqPath(in)})
		}
	} else {
		var err error
		jobs, err = batch.DiscoverTab(viper.GetString("dir"))
		if err != nil {
			return err
		}
	}

	runner := &batch.Runner{Workers: viper.GetInt("workers"), Logger: logger}
	n, err := runner.Run(jobs, func(j batch.Job) error {
		return batch.FreqFile(calc, j)
	})
	fmt.Printf("Processed %d TAB files and calculated allele frequencies.\n", n)
	return err
}

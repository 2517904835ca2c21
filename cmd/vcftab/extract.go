package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bozlab/vcftab/internal/batch"
	"github.com/bozlab/vcftab/internal/tab"
	"github.com/bozlab/vcftab/internal/vcf"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file...]",
		Short: "Extract chromosome and position columns from VCF files",
		Long: `Reduce VCF files to two-column TAB files.

Metadata lines (##) are dropped. The #CHROM column-header line and all
variant records are truncated to their first two tab-separated columns.
Each input.vcf produces a sibling input.tab, overwriting any existing
file. With no arguments, every *.vcf in the input directory is
processed.`,
		Example: `  vcftab extract                     # all *.vcf in the input directory
  vcftab extract --dir data/run1     # all *.vcf in data/run1
  vcftab extract calls.vcf           # a single file
  cat calls.vcf | vcftab extract -   # stdin to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
}

func runExtract(args []string) error {
	logger := newLogger()
	defer logger.Sync()

	if len(args) == 1 && args[0] == "-" {
		r := vcf.NewReaderFrom(os.Stdin)
		return batch.Extract(r, tab.NewWriter(os.Stdout), logger.With(zap.String("file", "stdin")))
	}

	var jobs []batch.Job
	if len(args) > 0 {
		for _, in := range args {
			jobs = append(jobs, batch.Job{In: in, Out: batch.TabPath(in)})
		}
	} else {
		var err error
		jobs, err = batch.DiscoverVCF(viper.GetString("dir"))
		if err != nil {
			return err
		}
	}

	runner := &batch.Runner{Workers: viper.GetInt("workers"), Logger: logger}
	n, err := runner.Run(jobs, func(j batch.Job) error {
		return batch.ExtractFile(j, logger)
	})
	fmt.Printf("Processed %d VCF files into TAB files.\n", n)
	return err
}

// Package main provides the vcftab command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vcftab",
		Short: "Extract VCF positions and compute allele frequencies",
		Long: `vcftab is a two-stage pipeline for VCF data wrangling.

The extract stage reduces VCF files to two-column chromosome/position
TAB files. The freq stage appends the alternative-allele frequency,
computed from the AD and DP sample fields, to TAB files. The stages
are independent and communicate only through files on disk.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().String("dir", ".", "directory to scan for input files")
	cmd.PersistentFlags().Int("workers", 1, "number of files to process concurrently")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	viper.BindPFlag("dir", cmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("workers", cmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newFreqCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vcftab version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.vcftab.yaml if present. Flags override file values.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.AddConfigPath(home)
	viper.SetConfigName(".vcftab")
	viper.SetConfigType("yaml")
	_ = viper.ReadInConfig()
}

// newLogger builds the console logger used for progress and per-line
// diagnostics. Output goes to stderr so piped data stays clean.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	if viper.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.Must(cfg.Build())
}

// Package batch drives the two pipeline stages over directories of files.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bozlab/vcftab/internal/freq"
	"github.com/bozlab/vcftab/internal/tab"
	"github.com/bozlab/vcftab/internal/vcf"
)

// Job is one independent input/output file pair.
type Job struct {
	In  string
	Out string
}

// TabPath derives the extractor output path for a VCF input.
func TabPath(vcfPath string) string {
	return strings.TrimSuffix(vcfPath, ".vcf") + ".tab"
}

// FreqPath derives the calculator output path for a TAB input.
// Only the final extension is replaced: a.b.tab becomes a.b_freq.tab.
func FreqPath(tabPath string) string {
	return strings.TrimSuffix(tabPath, filepath.Ext(tabPath)) + "_freq.tab"
}

// DiscoverVCF lists *.vcf files in dir, paired with their output paths.
func DiscoverVCF(dir string) ([]Job, error) {
	return discover(dir, ".vcf", TabPath)
}

// DiscoverTab lists *.tab files in dir, paired with their output paths.
func DiscoverTab(dir string) ([]Job, error) {
	return discover(dir, ".tab", FreqPath)
}

func discover(dir, ext string, outPath func(string) string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var jobs []Job
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		in := filepath.Join(dir, e.Name())
		jobs = append(jobs, Job{In: in, Out: outPath(in)})
	}
	return jobs, nil
}

// Extract streams rows from the VCF reader into the tab writer.
// Dropped lines (fewer than two columns) are logged and skipped.
func Extract(r *vcf.Reader, w *tab.Writer, logger *zap.Logger) error {
	for {
		row, err := r.Next()
		if err != nil {
			var perr *vcf.ParseError
			if errors.As(err, &perr) {
				logger.Warn("dropping line",
					zap.Int("line", perr.Line),
					zap.String("reason", perr.Message))
				continue
			}
			return err
		}
		if row == nil {
			break
		}

		if err := w.WriteRow(row.Chrom, row.Pos); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return w.Flush()
}

// ExtractFile runs the extractor for a single input/output pair.
// The output file is created or overwritten.
func ExtractFile(job Job, logger *zap.Logger) error {
	r, err := vcf.NewReader(job.In)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := os.Create(job.Out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := Extract(r, tab.NewWriter(out), logger.With(zap.String("file", job.In))); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FreqFile runs the allele-frequency calculator for a single
// input/output pair. The output file is created or overwritten.
func FreqFile(c *freq.Calculator, job Job) error {
	r, err := tab.NewReader(job.In)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := os.Create(job.Out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := c.ConvertAll(r, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Runner executes file jobs with a pool of workers. Jobs are
// independent, so concurrency across files preserves per-file output.
type Runner struct {
	Workers int // number of concurrent files; <=1 means sequential
	Logger  *zap.Logger
}

type jobResult struct {
	job Job
	err error
}

// Run executes fn for each job and returns the number that succeeded.
// Failures are logged and counted; a non-nil error summarizes them.
func (r *Runner) Run(jobs []Job, fn func(Job) error) (int, error) {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	items := make(chan Job)
	results := make(chan jobResult, workers)

	go func() {
		defer close(items)
		for _, job := range jobs {
			items <- job
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for job := range items {
				results <- jobResult{job: job, err: fn(job)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	processed := 0
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			logger.Error("file failed",
				zap.String("file", res.job.In),
				zap.Error(res.err))
			continue
		}
		processed++
		logger.Info("processed file",
			zap.String("in", res.job.In),
			zap.String("out", res.job.Out))
	}

	if failed > 0 {
		return processed, fmt.Errorf("%d of %d files failed", failed, len(jobs))
	}
	return processed, nil
}

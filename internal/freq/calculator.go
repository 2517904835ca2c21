// Package freq computes alternative-allele frequencies from the AD and
// DP fields of tab-delimited variant records.
package freq

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bozlab/vcftab/internal/tab"
)

// Column positions of the FORMAT and sample value fields.
// These are fixed offsets; verify your input matches before running.
const (
	FormatColumn = 8
	SampleColumn = 9
)

// Result is the outcome of computing a single record's allele frequency.
// Either Frequency is valid, or Skipped is set with the reason the
// record was dropped.
type Result struct {
	Frequency float64
	Skipped   bool
	Reason    string
}

func skipped(reason string) Result {
	return Result{Skipped: true, Reason: reason}
}

// Calculator computes allele frequencies record by record.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator.
func NewCalculator() *Calculator {
	return &Calculator{logger: zap.NewNop()}
}

// SetLogger sets the logger for per-line skip diagnostics.
func (c *Calculator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Compute derives the alternative-allele frequency for one record.
// The FORMAT field (column 8) names the sub-fields of the sample value
// field (column 9); AD must be two comma-separated integers and DP a
// single integer. Any violation yields a skipped Result, never an error.
func (c *Calculator) Compute(rec *tab.Record) Result {
	if len(rec.Fields) <= SampleColumn {
		return skipped(fmt.Sprintf("expected at least %d columns, found %d", SampleColumn+1, len(rec.Fields)))
	}

	keys := strings.Split(rec.Fields[FormatColumn], ":")
	values := strings.Split(rec.Fields[SampleColumn], ":")

	adIndex := indexOf(keys, "AD")
	if adIndex < 0 {
		return skipped("FORMAT column missing AD")
	}
	dpIndex := indexOf(keys, "DP")
	if dpIndex < 0 {
		return skipped("FORMAT column missing DP")
	}
	if adIndex >= len(values) || dpIndex >= len(values) {
		return skipped("sample column has fewer values than FORMAT keys")
	}

	counts := strings.Split(values[adIndex], ",")
	if len(counts) != 2 {
		return skipped(fmt.Sprintf("malformed AD value %q", values[adIndex]))
	}
	if _, err := strconv.Atoi(counts[0]); err != nil {
		return skipped(fmt.Sprintf("malformed AD value %q", values[adIndex]))
	}
	altCount, err := strconv.Atoi(counts[1])
	if err != nil {
		return skipped(fmt.Sprintf("malformed AD value %q", values[adIndex]))
	}

	depth, err := strconv.Atoi(values[dpIndex])
	if err != nil {
		return skipped(fmt.Sprintf("malformed DP value %q", values[dpIndex]))
	}
	if depth == 0 {
		return skipped("zero total depth")
	}

	return Result{Frequency: 100 * float64(altCount) / float64(depth)}
}

// ConvertAll streams records from the reader and writes each successful
// record's original line plus the frequency as a trailing column.
// Skipped records are logged and dropped from the output.
func (c *Calculator) ConvertAll(in *tab.Reader, out io.Writer) error {
	bw := bufio.NewWriter(out)

	for {
		rec, err := in.Next()
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		if rec == nil {
			break
		}

		res := c.Compute(rec)
		if res.Skipped {
			c.logger.Warn("skipping line",
				zap.String("file", in.Name()),
				zap.Int("line", rec.Line),
				zap.String("reason", res.Reason))
			continue
		}

		if _, err := fmt.Fprintf(bw, "%s\t%.2f%%\n", rec.Raw, res.Frequency); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	return bw.Flush()
}

func indexOf(list []string, name string) int {
	for i, s := range list {
		if s == name {
			return i
		}
	}
	return -1
}

// Package tab provides reading and writing of tab-delimited variant files.
package tab

import (
	"bufio"
	"io"
)

// Writer writes two-column chromosome/position rows.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a buffered two-column writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRow writes a single chromosome/position row.
func (tw *Writer) WriteRow(chrom, pos string) error {
	_, err := tw.w.WriteString(chrom + "\t" + pos + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}

// Package vcf provides streaming access to the chromosome and position
// columns of VCF files.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row holds the first two columns of a retained VCF line.
type Row struct {
	Chrom    string
	Pos      string
	IsHeader bool // true for the #CHROM column-header line
}

// Reader reads rows from a VCF file, skipping ## metadata lines.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	meta       []string // ## metadata lines seen so far
}

// NewReader creates a new VCF row reader for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r := &Reader{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read vcf file: %w", err)
	}

	// Seek back to beginning
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	return r, nil
}

// NewReaderFrom creates a reader from an io.Reader (e.g., stdin).
func NewReaderFrom(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// Next reads the next retained row from the VCF file. Lines starting
// with ## are skipped. Lines with fewer than two tab-separated fields
// return a *ParseError; the reader remains usable afterwards.
// Returns nil, nil when there are no more rows.
func (r *Reader) Next() (*Row, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read vcf line: %w", err)
		}
		if line == "" && err == io.EOF {
			return nil, nil
		}
		r.lineNumber++

		line = strings.TrimRight(line, " \t\r\n")

		if strings.HasPrefix(line, "##") {
			r.meta = append(r.meta, line)
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, &ParseError{
				Line:    r.lineNumber,
				Message: fmt.Sprintf("expected at least 2 columns, found %d", len(fields)),
			}
		}

		return &Row{
			Chrom:    fields[0],
			Pos:      fields[1],
			IsHeader: strings.HasPrefix(line, "#CHROM"),
		}, nil
	}
}

// Meta returns the ## metadata lines read so far.
func (r *Reader) Meta() []string {
	return r.meta
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ParseError represents a dropped VCF line with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

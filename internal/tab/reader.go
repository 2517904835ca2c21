package tab

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single tab-separated row.
type Record struct {
	Fields []string
	Raw    string // line with trailing whitespace trimmed
	Line   int    // 1-based line number in the source file
}

// Reader reads tab-separated records line by line.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	name       string
}

// NewReader creates a new record reader for the given file.
// Supports both plain and gzipped (.tab.gz) files.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin, "stdin"), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tab file: %w", err)
	}

	r := &Reader{file: file, name: path}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read tab file: %w", err)
	}

	// Seek back to beginning
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek tab file: %w", err)
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
func NewReaderFrom(r io.Reader, name string) *Reader {
	return &Reader{reader: bufio.NewReader(r), name: name}
}

// Next reads the next record. Returns nil, nil when there are no more
// records. Blank and malformed lines are still returned as records;
// classifying them is the caller's concern.
func (r *Reader) Next() (*Record, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read tab line: %w", err)
	}
	if line == "" && err == io.EOF {
		return nil, nil
	}
	r.lineNumber++

	raw := strings.TrimRight(line, " \t\r\n")

	return &Record{
		Fields: strings.Split(raw, "\t"),
		Raw:    raw,
		Line:   r.lineNumber,
	}, nil
}

// Name returns the name of the underlying source.
func (r *Reader) Name() string {
	return r.name
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

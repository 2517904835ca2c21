package vcf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVCF = `##fileformat=VCFv4.2
##source=testdata
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
chr1	12345	.	A	G	50	PASS	DP=40
chr2	67890	.	C	T	99	PASS	DP=12
`

func writeTempVCF(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_SkipsMetadata(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(sampleVCF))

	row, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.IsHeader)
	assert.Equal(t, "#CHROM", row.Chrom)
	assert.Equal(t, "POS", row.Pos)

	// Metadata lines were consumed, not emitted
	assert.Len(t, r.Meta(), 2)
}

func TestReader_DataRows(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(sampleVCF))

	// Skip header row
	_, err := r.Next()
	require.NoError(t, err)

	row, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "chr1", row.Chrom)
	assert.Equal(t, "12345", row.Pos)
	assert.False(t, row.IsHeader)

	row, err = r.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "chr2", row.Chrom)
	assert.Equal(t, "67890", row.Pos)

	row, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestReader_ShortRow(t *testing.T) {
	input := "chr1\t100\nmalformed-no-tabs\nchr2\t200\n"
	r := NewReaderFrom(strings.NewReader(input))

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1", row.Chrom)

	_, err = r.Next()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	// Reader is still usable after a dropped line
	row, err = r.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "chr2", row.Chrom)
}

func TestReader_BlankLineDropped(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("chr1\t100\n\nchr2\t200\n"))

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr2", row.Chrom)
}

func TestReader_NoTrailingNewline(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("chr1\t100\nchr2\t200"))

	var rows []*Row
	for {
		row, err := r.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)
	assert.Equal(t, "200", rows[1].Pos)
}

func TestReader_CRLF(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("chr1\t100\r\n"))

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "100", row.Pos)
}

func TestReader_PlainFile(t *testing.T) {
	path := writeTempVCF(t, "sample.vcf", sampleVCF)

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	count := 0
	for {
		row, err := r.Next()
		require.NoError(t, err)
		if row == nil {
			break
		}
		count++
	}
	assert.Equal(t, 3, count) // header + 2 data rows
}

func TestReader_GzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.vcf.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleVCF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	row, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.IsHeader)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.vcf"))
	require.Error(t, err)
}

package tab

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Rows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteRow("#CHROM", "POS"))
	require.NoError(t, w.WriteRow("chr1", "12345"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "#CHROM\tPOS\nchr1\t12345\n", buf.String())
}

func TestReader_Records(t *testing.T) {
	input := "chr1\t100\tA\tG\n chr2\t200 \t \n"
	r := NewReaderFrom(strings.NewReader(input), "test")

	rec, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, []string{"chr1", "100", "A", "G"}, rec.Fields)
	assert.Equal(t, "chr1\t100\tA\tG", rec.Raw)
	assert.Equal(t, 1, rec.Line)

	// Trailing whitespace is trimmed, leading is preserved
	rec, err = r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, " chr2\t200", rec.Raw)
	assert.Equal(t, 2, rec.Line)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReader_BlankLine(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("\nchr1\t100\n"), "test")

	rec, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "", rec.Raw)
	assert.Equal(t, []string{""}, rec.Fields)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100", rec.Raw)
}

func TestReader_NoTrailingNewline(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("chr1\t100"), "test")

	rec, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "chr1\t100", rec.Raw)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReader_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tab")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t100\nchr2\t200\n"), 0o644))

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, path, r.Name())

	count := 0
	for {
		rec, err := r.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
}

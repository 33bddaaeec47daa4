package ioaccession_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/internal/ioaccession"
	"github.com/gnames/taxlookup/internal/iotesting"
	"github.com/gnames/taxlookup/pkg/accrun"
	"github.com/gnames/taxlookup/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"accession", "accession.version"}

func input(name string, rows ...string) ioaccession.Input {
	return ioaccession.Input{
		Name: name,
		R:    strings.NewReader(strings.Join(rows, "\n") + "\n"),
	}
}

func drain(t *testing.T, m *ioaccession.Merger) []string {
	t.Helper()
	var res []string
	for m.Next() {
		p := m.Pair()
		res = append(res, fmt.Sprintf("%s→%d", p.Accession, p.TaxonID))
	}
	require.NoError(t, m.Err())
	return res
}

func TestMergeTwoFiles(t *testing.T) {
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		input("a", "accession\ttaxid", "A1\t10", "A5\t10", "A9\t20"),
		input("b", "accession\ttaxid", "A3\t10", "A7\t20"),
	}, columns)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"A1→10", "A3→10", "A5→10", "A7→20", "A9→20"},
		drain(t, m),
	)
	assert.Equal(t, 0, m.Skipped())
}

func TestMergeFeedsEncoder(t *testing.T) {
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		input("a", "accession\ttaxid", "A1\t10", "A5\t10", "A9\t20"),
		input("b", "accession\ttaxid", "A3\t10", "A7\t20"),
	}, columns)
	require.NoError(t, err)

	var keys []string
	w := writerFunc(func(k, _ []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	stats, err := accrun.Encode(m, w)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A5", "A7", "A9"}, keys)
	assert.Equal(t, 5, stats.RowsRead)
}

type writerFunc func(k, v []byte) error

func (f writerFunc) Insert(k, v []byte) error { return f(k, v) }

func TestMergeTiesAreStable(t *testing.T) {
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		input("a", "accession\ttaxid", "B1\t1", "B2\t1"),
		input("b", "accession\ttaxid", "B1\t2", "B2\t2"),
		input("c", "accession\ttaxid", "B1\t3"),
	}, columns)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"B1→1", "B1→2", "B1→3", "B2→1", "B2→2"},
		drain(t, m),
	)
}

func TestMergeHeaderSpellings(t *testing.T) {
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		input("nucl", iotesting.MappingHeader,
			iotesting.MappingRow("C2", 3, 7),
			iotesting.MappingRow("C4", 1, 7),
		),
		input("prot", "accession.version\ttaxid", "C1.2\t5", "C3.1\t6"),
		input("reversed", "taxid\taccession", "8\tC0"),
	}, columns)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"C0→8", "C1→5", "C2→7", "C3→6", "C4→7"},
		drain(t, m),
	)
}

func TestMergeSkipsMalformedRows(t *testing.T) {
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		input("a", "accession\ttaxid",
			"D1\t1",
			"D2",
			"D3\tnine",
			"\t4",
			"D5\t-5",
			"D6\t6\textra",
		),
	}, columns)
	require.NoError(t, err)

	assert.Equal(t, []string{"D1→1", "D6→6"}, drain(t, m))
	assert.Equal(t, 4, m.Skipped())
}

func TestMergeReadsLazily(t *testing.T) {
	// the stream fails after its rows, the rows still come out first
	r := io.MultiReader(
		strings.NewReader("accession\ttaxid\nE1\t1\nE2\t2\n"),
		&failReader{},
	)
	m, err := ioaccession.NewMerger([]ioaccession.Input{
		{Name: "lazy", R: r},
	}, columns)
	require.NoError(t, err)

	var accs []string
	for m.Next() {
		accs = append(accs, m.Pair().Accession)
	}
	assert.Equal(t, []string{"E1", "E2"}, accs)
	require.Error(t, m.Err())
	gnErr, ok := m.Err().(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, errDisk)
	assert.False(t, m.Next(), "merge stays stopped after an error")
}

var errDisk = errors.New("disk failure")

type failReader struct{}

func (f *failReader) Read([]byte) (int, error) { return 0, errDisk }

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		msg   string
		input ioaccession.Input
		vars  []any
	}{
		{
			msg:   "no accession column",
			input: input("x", "acc\ttaxid", "A1\t1"),
			vars:  []any{"x", "accession' or 'accession.version"},
		},
		{
			msg:   "no taxid column",
			input: input("y", "accession\ttax_id", "A1\t1"),
			vars:  []any{"y", "taxid"},
		},
		{
			msg:   "case sensitive",
			input: input("z", "Accession\tTaxid", "A1\t1"),
			vars:  []any{"z", "accession' or 'accession.version"},
		},
		{
			msg:   "empty",
			input: ioaccession.Input{Name: "e", R: strings.NewReader("")},
			vars:  []any{"e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := ioaccession.NewMerger(
				[]ioaccession.Input{input("ok", "accession\ttaxid"), tt.input},
				columns,
			)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, errcode.MappingHeaderError, gnErr.Code)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.True(t, errcode.Is(err, errcode.InvalidFormatError))
		})
	}
}

func TestMergeNoInputs(t *testing.T) {
	m, err := ioaccession.NewMerger(nil, columns)
	require.NoError(t, err)
	assert.False(t, m.Next())
	assert.NoError(t, m.Err())
}

func TestFindAndOpenFiles(t *testing.T) {
	src := iotesting.SourceDir(t)
	dir := filepath.Join(src, ioaccession.MappingDir)
	suffixes := []string{
		"accession2taxid.gz",
		"accession2taxid.FULL.gz",
		"accession2taxid.EXTRA.gz",
	}

	paths, err := ioaccession.FindFiles(dir, suffixes)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "nucl_gb.accession2taxid.gz", filepath.Base(paths[0]))
	assert.Equal(t, "prot.accession2taxid.FULL.gz", filepath.Base(paths[1]))

	var wrapped int
	files, err := ioaccession.OpenFiles(paths, func(r io.Reader) io.Reader {
		wrapped++
		return r
	})
	require.NoError(t, err)
	defer files.Close()
	assert.Equal(t, 2, wrapped)
	assert.Positive(t, files.Size)

	m, err := ioaccession.NewMerger(files.Inputs, columns)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"A1→9606", "A3→9606", "A5→9606", "A7→562", "A9→562"},
		drain(t, m),
	)
}

func TestFindFilesErrors(t *testing.T) {
	_, err := ioaccession.FindFiles(filepath.Join(t.TempDir(), "none"), []string{".gz"})
	assert.Equal(t, errcode.SourceDirError, errcode.Code(err))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	_, err = ioaccession.FindFiles(dir, []string{"accession2taxid.gz"})
	assert.Equal(t, errcode.SourceDirError, errcode.Code(err))
}

func TestOpenFilesNotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.accession2taxid.gz")
	require.NoError(t, os.WriteFile(path, []byte("accession\ttaxid\n"), 0644))

	_, err := ioaccession.OpenFiles([]string{path}, nil)
	assert.Equal(t, errcode.ReadFileError, errcode.Code(err))
}

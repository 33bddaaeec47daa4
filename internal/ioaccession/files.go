package ioaccession

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// MappingDir is the subdirectory of a build source with the mapping
// tables.
const MappingDir = "accession2taxid"

// FindFiles returns the sorted paths of files in dir whose names end
// with one of suffixes.
func FindFiles(dir string, suffixes []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, SourceDirError(dir, err)
	}

	var res []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if slices.ContainsFunc(suffixes, func(sfx string) bool {
			return strings.HasSuffix(name, sfx)
		}) {
			res = append(res, filepath.Join(dir, name))
		}
	}

	if len(res) == 0 {
		return nil, NoFilesError(dir, suffixes)
	}
	slices.Sort(res)
	return res, nil
}

// Files is a set of open gzipped mapping tables.
type Files struct {
	Inputs []Input
	// Size is the total compressed size of all files.
	Size int64

	closers []io.Closer
}

// OpenFiles opens gzipped mapping tables. When wrap is not nil, it is
// applied to every compressed stream before decompression, which allows
// counting the bytes read.
func OpenFiles(paths []string, wrap func(io.Reader) io.Reader) (*Files, error) {
	res := &Files{}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			res.Close()
			return nil, ReadError(path, err)
		}
		res.closers = append(res.closers, f)

		info, err := f.Stat()
		if err != nil {
			res.Close()
			return nil, ReadError(path, err)
		}
		res.Size += info.Size()

		var r io.Reader = f
		if wrap != nil {
			r = wrap(f)
		}
		gz, err := gzip.NewReader(r)
		if err != nil {
			res.Close()
			return nil, ReadError(path, err)
		}
		res.closers = append(res.closers, gz)

		res.Inputs = append(res.Inputs, Input{Name: filepath.Base(path), R: gz})
		slog.Info("Mapping file opened", "file", path, "bytes", info.Size())
	}

	return res, nil
}

// Close closes all files.
func (f *Files) Close() error {
	var res error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil && res == nil {
			res = err
		}
	}
	f.closers = nil
	return res
}

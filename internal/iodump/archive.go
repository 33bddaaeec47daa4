package iodump

import (
	"archive/tar"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// ReadArchive parses names.dmp and nodes.dmp from a gzipped tar archive
// such as taxdump.tar.gz. Entries are matched by base name, other entries
// are skipped.
func ReadArchive(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadDumpError(path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, ReadDumpError(path, err)
	}
	defer gz.Close()

	return readTar(tar.NewReader(gz), path)
}

func readTar(tr *tar.Reader, path string) (*Dump, error) {
	res := &Dump{}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadDumpError(path, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		switch filepath.Base(hdr.Name) {
		case NamesFile:
			slog.Info("Reading dump table", "file", hdr.Name)
			if res.Names, err = ReadNames(tr); err != nil {
				return nil, err
			}
		case NodesFile:
			slog.Info("Reading dump table", "file", hdr.Name)
			if res.Nodes, err = ReadNodes(tr); err != nil {
				return nil, err
			}
		}
	}

	if res.Names == nil {
		return nil, TableMissingError(path, NamesFile)
	}
	if res.Nodes == nil {
		return nil, TableMissingError(path, NodesFile)
	}
	return res, nil
}

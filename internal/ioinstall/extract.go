package ioinstall

import (
	"archive/tar"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Extract unpacks a gzipped tar archive into dir, replacing what was
// there. The archive is unpacked to a staging directory first, so a
// broken archive leaves the old content of dir untouched. When the
// archive holds a single top directory, its content becomes dir.
// Archives that do not hold a taxlookup index are rejected.
func Extract(archive, dir string) error {
	staging := dir + ".extract"
	if err := os.RemoveAll(staging); err != nil {
		return ExtractError(staging, err)
	}
	defer os.RemoveAll(staging)

	if err := untar(archive, staging); err != nil {
		return err
	}

	src, err := contentRoot(staging)
	if err != nil {
		return ExtractError(archive, err)
	}

	// every badger directory carries a MANIFEST
	if _, err = os.Stat(filepath.Join(src, "MANIFEST")); err != nil {
		return NotIndexError(archive)
	}

	if err = os.RemoveAll(dir); err != nil {
		return ExtractError(dir, err)
	}
	if err = os.Rename(src, dir); err != nil {
		return ExtractError(dir, err)
	}

	slog.Info("Snapshot extracted", "archive", archive, "dir", dir)
	return nil
}

func untar(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return ExtractError(archive, err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return ExtractError(archive, err)
	}
	defer gzr.Close()

	if err = os.MkdirAll(dest, 0755); err != nil {
		return ExtractError(dest, err)
	}

	tr := tar.NewReader(gzr)
	for {
		h, err := tr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return ExtractError(archive, err)
		}

		name, ok := sanitizeArchivePath(h.Name)
		if !ok {
			return UnsafePathError(archive, h.Name)
		}
		if name == "" {
			continue
		}
		path := filepath.Join(dest, name)

		switch h.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(path, 0755); err != nil {
				return ExtractError(path, err)
			}
		case tar.TypeReg:
			if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return ExtractError(path, err)
			}
			if err = writeFile(path, tr); err != nil {
				return ExtractError(path, err)
			}
		default:
			slog.Warn("Skipping archive entry", "name", h.Name, "type", h.Typeflag)
		}
	}
}

// sanitizeArchivePath cleans an entry name. It returns false for names
// that would land outside of the destination directory.
func sanitizeArchivePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	if name == "" {
		return "", true
	}
	if strings.HasPrefix(name, "/") {
		return "", false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", false
		}
	}
	clean := filepath.Clean(name)
	if clean == "." {
		return "", true
	}
	return clean, true
}

// contentRoot returns the single top directory of dir if there is one,
// otherwise dir itself.
func contentRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

func writeFile(path string, r io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

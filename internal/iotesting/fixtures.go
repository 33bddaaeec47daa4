// Package iotesting provides shared fixtures for tests: small taxonomy
// dumps, accession mapping files and a configuration that keeps every
// file inside a temporary directory.
package iotesting

import (
	"archive/tar"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/taxlookup/pkg/config"
	"github.com/klauspost/compress/gzip"
)

// MappingHeader is the header of NCBI accession2taxid files.
const MappingHeader = "accession\taccession.version\ttaxid\tgi"

// TestConfig returns a configuration with home and index directories
// inside t.TempDir().
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDBDir(filepath.Join(home, "taxonomy.badger")),
		config.OptDBCacheSize(16),
	})
	return cfg
}

// NamesRow formats a names.dmp row.
func NamesRow(id int, name, class string) string {
	cols := []string{strconv.Itoa(id), name, "", class}
	return strings.Join(cols, "\t|\t") + "\t|"
}

// NodesRow formats a nodes.dmp row.
func NodesRow(id, parent int, rank string) string {
	cols := []string{
		strconv.Itoa(id), strconv.Itoa(parent), rank,
		"", "0", "1", "11", "1", "0", "1", "0", "0", "",
	}
	return strings.Join(cols, "\t|\t") + "\t|"
}

// HumanNames is the names table of a small taxonomy with one species
// and one bacterium.
func HumanNames() []string {
	return []string{
		NamesRow(1, "root", "scientific name"),
		NamesRow(1, "all", "synonym"),
		NamesRow(2, "Bacteria", "scientific name"),
		NamesRow(2, "eubacteria", "genbank common name"),
		NamesRow(562, "Escherichia coli", "scientific name"),
		NamesRow(2759, "Eukaryota", "scientific name"),
		NamesRow(9604, "Hominidae", "scientific name"),
		NamesRow(9605, "Homo", "scientific name"),
		NamesRow(9606, "Homo sapiens", "scientific name"),
		NamesRow(9606, "human", "genbank common name"),
	}
}

// HumanNodes is the nodes table matching HumanNames.
func HumanNodes() []string {
	return []string{
		NodesRow(1, 1, "no rank"),
		NodesRow(2, 1, "superkingdom"),
		NodesRow(562, 2, "species"),
		NodesRow(2759, 1, "superkingdom"),
		NodesRow(9604, 2759, "family"),
		NodesRow(9605, 9604, "genus"),
		NodesRow(9606, 9605, "species"),
	}
}

// MappingRow formats an accession2taxid row.
func MappingRow(acc string, version int, taxid int) string {
	return strings.Join([]string{
		acc,
		acc + "." + strconv.Itoa(version),
		strconv.Itoa(taxid),
		"0",
	}, "\t")
}

// WriteGzip writes lines to a gzipped file.
func WriteGzip(t *testing.T, path string, lines []string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err = gz.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err = gz.Close(); err != nil {
		t.Fatalf("Failed to close %s: %v", path, err)
	}
}

// WriteTarGz writes files, keyed by their names inside the archive, to a
// gzipped tar archive.
func WriteTarGz(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err = tw.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write header of %s: %v", name, err)
		}
		if _, err = tw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err = tw.Close(); err != nil {
		t.Fatalf("Failed to close tar %s: %v", path, err)
	}
	if err = gz.Close(); err != nil {
		t.Fatalf("Failed to close gzip %s: %v", path, err)
	}
}

// WriteTaxdump writes taxdump.tar.gz with the given tables to dir.
func WriteTaxdump(t *testing.T, dir string, names, nodes []string) string {
	t.Helper()

	path := filepath.Join(dir, "taxdump.tar.gz")
	WriteTarGz(t, path, map[string]string{
		"names.dmp":     strings.Join(names, "\n") + "\n",
		"nodes.dmp":     strings.Join(nodes, "\n") + "\n",
		"citations.dmp": "",
		"readme.txt":    "NCBI taxonomy dump",
	})
	return path
}

// SourceDir creates a complete build source: taxdump.tar.gz and two
// mapping files in accession2taxid/. The mappings hold accessions
// A1, A5, A9 and A3, A7 so that after merging A1..A5 belong to
// Homo sapiens (9606) and A7..A9 to Escherichia coli (562). A file
// that does not match the mapping suffixes is added as a decoy.
func SourceDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteTaxdump(t, dir, HumanNames(), HumanNodes())

	accDir := filepath.Join(dir, "accession2taxid")
	if err := os.MkdirAll(accDir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", accDir, err)
	}

	WriteGzip(t, filepath.Join(accDir, "nucl_gb.accession2taxid.gz"), []string{
		MappingHeader,
		MappingRow("A1", 1, 9606),
		MappingRow("A5", 2, 9606),
		MappingRow("A9", 1, 562),
	})
	WriteGzip(t, filepath.Join(accDir, "prot.accession2taxid.FULL.gz"), []string{
		"accession.version\ttaxid",
		"A3.1\t9606",
		"A7.1\t562",
	})
	WriteGzip(t, filepath.Join(accDir, "dead_nucl.accession2taxid.old.gz"), []string{
		MappingHeader,
		MappingRow("A6", 1, 9606),
	})
	return dir
}

// Package iodump reads the NCBI taxonomy dump. Only two tables are used:
// names.dmp for scientific names and nodes.dmp for the parent and rank
// of every taxon.
//
// Rows of both tables are split on tab characters, so the '|' separators
// of the dump become fields of their own. That is why a names.dmp row
// has 8 fields and a nodes.dmp row has 26.
package iodump

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gnlib"
	"github.com/gnames/taxlookup/pkg/ent/rank"
)

const (
	NamesFile = "names.dmp"
	NodesFile = "nodes.dmp"

	namesFields = 8
	nodesFields = 26

	scientificName = "scientific name"

	// maxLine is the longest row the scanner accepts.
	maxLine = 1 << 20
)

// Node is the position of a taxon in the tree.
type Node struct {
	Parent uint32
	Rank   rank.Rank
}

// Dump keeps both tables in memory keyed by taxon ID.
type Dump struct {
	Names map[uint32]string
	Nodes map[uint32]Node
}

// ReadNames parses names.dmp. Only scientific names are kept, and when
// a taxon has several of them the last one wins.
func ReadNames(r io.Reader) (map[uint32]string, error) {
	res := make(map[uint32]string)

	err := scan(r, NamesFile, namesFields, func(line int, fs []string) error {
		if fs[6] != scientificName {
			return nil
		}
		id, err := parseID(fs[0], NamesFile, line)
		if err != nil {
			return err
		}
		res[id] = validName(fs[2])
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Scientific names loaded", "count", len(res))
	return res, nil
}

// ReadNodes parses nodes.dmp.
func ReadNodes(r io.Reader) (map[uint32]Node, error) {
	res := make(map[uint32]Node)

	err := scan(r, NodesFile, nodesFields, func(line int, fs []string) error {
		id, err := parseID(fs[0], NodesFile, line)
		if err != nil {
			return err
		}
		parent, err := parseID(fs[2], NodesFile, line)
		if err != nil {
			return err
		}
		rk, err := rank.Parse(fs[4])
		if err != nil {
			return UnknownRankError(fs[4], NodesFile, line)
		}
		res[id] = Node{Parent: parent, Rank: rk}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Taxonomy nodes loaded", "count", len(res))
	return res, nil
}

func scan(
	r io.Reader,
	file string,
	fields int,
	fn func(line int, fs []string) error,
) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var line int
	for sc.Scan() {
		line++
		fs := strings.Split(sc.Text(), "\t")
		if len(fs) != fields {
			return FieldCountError(file, line, fields, len(fs))
		}
		if err := fn(line, fs); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return ReadDumpError(file, err)
	}
	return nil
}

func parseID(s, file string, line int) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, BadIDError(s, file, line, err)
	}
	return uint32(id), nil
}

// validName keeps valid UTF-8 names byte for byte and repairs the rest.
func validName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return gnlib.FixUtf8(s)
}

// Package accrun stores accession-to-taxon mappings as runs. A run is a
// maximal span of sorted accessions that share one taxon ID. Only the
// first and the last accession of every run are written to the index,
// and any accession that falls between two stored keys with the same
// taxon ID is resolved to that taxon.
package accrun

import (
	"encoding/binary"
	"strings"
)

// Pair is an accession bound to a taxon ID.
type Pair struct {
	Accession string
	TaxonID   uint32
}

// PairSource yields pairs in ascending accession order. It follows the
// bufio.Scanner convention: Next advances, Pair returns the current pair
// and Err reports the error that stopped the iteration, if any.
type PairSource interface {
	Next() bool
	Pair() Pair
	Err() error
}

// Writer receives the run endpoints.
type Writer interface {
	Insert(key, val []byte) error
}

// Reader is an ordered accession namespace. Predecessor and Successor
// return the nearest stored key strictly below or above the given key.
type Reader interface {
	Get(key []byte) (val []byte, ok bool, err error)
	Predecessor(key []byte) (k, val []byte, ok bool, err error)
	Successor(key []byte) (k, val []byte, ok bool, err error)
}

// StripVersion removes the version suffix from an accession, starting
// from the first dot.
func StripVersion(acc string) string {
	if i := strings.IndexByte(acc, '.'); i >= 0 {
		return acc[:i]
	}
	return acc
}

// EncodeID converts a taxon ID to its stored 4-byte little-endian form.
func EncodeID(id uint32) []byte {
	res := make([]byte, 4)
	binary.LittleEndian.PutUint32(res, id)
	return res
}

// DecodeID converts a stored value back to a taxon ID. It returns false
// if the value is not exactly 4 bytes long.
func DecodeID(bs []byte) (uint32, bool) {
	if len(bs) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(bs), true
}

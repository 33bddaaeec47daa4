// Package rank provides the closed vocabulary of taxonomic ranks used by
// the NCBI taxonomy. Every rank has one canonical lowercase string and a
// one-byte code that is stored in the index.
package rank

import (
	"fmt"
)

// Rank is a taxonomic level. Its numeric value is the code persisted in
// the index, so the order of constants must never change.
type Rank uint8

const (
	NoRank Rank = iota

	Clade

	Superkingdom
	Kingdom
	Subkingdom

	Superphylum
	Phylum
	Subphylum

	Superclass
	Class
	Subclass
	Infraclass

	Cohort
	Subcohort

	Superorder
	Order
	Suborder
	Infraorder
	Parvorder

	Superfamily
	Family
	Subfamily

	Tribe
	Subtribe

	Genus
	Subgenus

	Section
	Subsection
	Series

	SpeciesGroup
	SpeciesSubgroup
	Species
	Subspecies

	Morph
	Varietas
	Forma
	FormaSpecialis
	Pathogroup
	Strain
	Serogroup
	Serotype
	Genotype
	Biotype
	Isolate
)

var names = [...]string{
	NoRank:          "no rank",
	Clade:           "clade",
	Superkingdom:    "superkingdom",
	Kingdom:         "kingdom",
	Subkingdom:      "subkingdom",
	Superphylum:     "superphylum",
	Phylum:          "phylum",
	Subphylum:       "subphylum",
	Superclass:      "superclass",
	Class:           "class",
	Subclass:        "subclass",
	Infraclass:      "infraclass",
	Cohort:          "cohort",
	Subcohort:       "subcohort",
	Superorder:      "superorder",
	Order:           "order",
	Suborder:        "suborder",
	Infraorder:      "infraorder",
	Parvorder:       "parvorder",
	Superfamily:     "superfamily",
	Family:          "family",
	Subfamily:       "subfamily",
	Tribe:           "tribe",
	Subtribe:        "subtribe",
	Genus:           "genus",
	Subgenus:        "subgenus",
	Section:         "section",
	Subsection:      "subsection",
	Series:          "series",
	SpeciesGroup:    "species group",
	SpeciesSubgroup: "species subgroup",
	Species:         "species",
	Subspecies:      "subspecies",
	Morph:           "morph",
	Varietas:        "varietas",
	Forma:           "forma",
	FormaSpecialis:  "forma specialis",
	Pathogroup:      "pathogroup",
	Strain:          "strain",
	Serogroup:       "serogroup",
	Serotype:        "serotype",
	Genotype:        "genotype",
	Biotype:         "biotype",
	Isolate:         "isolate",
}

var byName = func() map[string]Rank {
	res := make(map[string]Rank, len(names))
	for i, v := range names {
		res[v] = Rank(i)
	}
	return res
}()

// Count is the number of ranks in the vocabulary.
const Count = len(names)

// String returns the canonical lowercase form of the rank.
func (r Rank) String() string {
	if int(r) < len(names) {
		return names[r]
	}
	return fmt.Sprintf("rank(%d)", uint8(r))
}

// Valid reports whether r belongs to the vocabulary.
func (r Rank) Valid() bool {
	return int(r) < len(names)
}

// MarshalText encodes the rank as its canonical string.
func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown rank code %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// Parse converts a canonical rank string into Rank. The match is exact,
// strings outside of the vocabulary return an error.
func Parse(s string) (Rank, error) {
	if r, ok := byName[s]; ok {
		return r, nil
	}
	return NoRank, fmt.Errorf("unknown rank %q", s)
}

// FromCode converts a stored one-byte code into Rank.
func FromCode(b byte) (Rank, error) {
	r := Rank(b)
	if !r.Valid() {
		return NoRank, fmt.Errorf("unknown rank code %d", b)
	}
	return r, nil
}

// All returns every rank in code order.
func All() []Rank {
	res := make([]Rank, len(names))
	for i := range names {
		res[i] = Rank(i)
	}
	return res
}

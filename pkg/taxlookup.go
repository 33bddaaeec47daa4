// Package taxlookup defines the query surface of a taxonomy index.
package taxlookup

import (
	"github.com/gnames/taxlookup/pkg/ent/meta"
	"github.com/gnames/taxlookup/pkg/ent/rank"
	"github.com/gnames/taxlookup/pkg/lineage"
)

// Result is the answer to one query.
type Result struct {
	// Query is the accession or taxon ID as it was asked.
	Query string `json:"query"`
	// TaxonID is the resolved taxon.
	TaxonID uint32 `json:"taxonId"`
	// Lineage starts with the resolved taxon and ends below the root.
	Lineage lineage.Lineage `json:"lineage"`
}

// TaxonomyDB is an open taxonomy index. Query errors concern only the
// query that caused them, the handle stays usable.
type TaxonomyDB interface {
	// Resolve returns the taxon ID of an accession. The version suffix
	// of the accession is ignored.
	Resolve(acc string) (uint32, error)

	// QueryAccession resolves an accession and returns its lineage.
	QueryAccession(acc string) (Result, error)

	// QueryTaxon returns the lineage of a taxon.
	QueryTaxon(id uint32) (Result, error)

	// Rank returns the rank of a taxon.
	Rank(id uint32) (rank.Rank, error)

	// Name returns the scientific name of a taxon.
	Name(id uint32) (string, error)

	// Meta returns metadata of the build that created the index, or nil
	// if the index has none.
	Meta() (*meta.Meta, error)

	// Dir returns the location of the index.
	Dir() string

	// Close releases the index.
	Close() error
}

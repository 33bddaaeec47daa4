package lineage

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

// MissingRecordError is returned when a taxon met during the walk has no
// parent, rank or name record.
func MissingRecordError(queried, missing uint32, record string) error {
	msg := `Taxonomy index is corrupted

<em>Queried taxon:</em> %d
<em>Taxon without %s record:</em> %d

<em>How to fix:</em>
  Rebuild the index with <em>taxlookup build</em>`

	vars := []any{queried, record, missing}

	return &gn.Error{
		Code: errcode.CorruptedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"corrupted taxonomy: no %s for taxon %d (walk from %d)",
			record, missing, queried,
		),
	}
}

// CycleError is returned when the parent chain returns to a taxon it has
// already visited.
func CycleError(queried, repeated uint32) error {
	msg := `Taxonomy index is corrupted

<em>Queried taxon:</em> %d
<em>Parent chain loops at taxon:</em> %d

<em>How to fix:</em>
  Rebuild the index with <em>taxlookup build</em>`

	vars := []any{queried, repeated}

	return &gn.Error{
		Code: errcode.CorruptedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"corrupted taxonomy: parent cycle at taxon %d (walk from %d)",
			repeated, queried,
		),
	}
}

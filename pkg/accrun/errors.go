package accrun

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

// NotFoundError is returned when an accession is neither stored nor
// inside a stored run.
func NotFoundError(acc string) error {
	msg := "Accession <em>%s</em> is not in the index"
	vars := []any{acc}

	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("accession %q not found", acc),
	}
}

// BadValueError is returned when a stored taxon ID does not have
// the size of uint32.
func BadValueError(acc string, key, val []byte) error {
	msg := `Taxonomy index is corrupted

<em>Accession:</em> %s
<em>Stored value size:</em> %d bytes (expected 4)

<em>How to fix:</em>
  Rebuild the index with <em>taxlookup build</em>`

	vars := []any{acc, len(val)}

	return &gn.Error{
		Code: errcode.CorruptedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"corrupted value %x for accession key %q", val, key,
		),
	}
}

package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func OpenError(dir string, err error) error {
	msg := `Cannot open taxonomy index at <em>%s</em>

<em>Possible causes:</em>
  1. Another taxlookup process is using the index
  2. The directory is not writable

<em>How to fix:</em>
  Wait for the other process to finish or remove the directory and run
  <em>taxlookup build</em> or <em>taxlookup install</em>`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open badger store at %s: %w", dir, err),
	}
}

func ReadError(key []byte, err error) error {
	msg := "Cannot read from taxonomy index"

	return &gn.Error{
		Code: errcode.DBReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read key %q: %w", key, err),
	}
}

func WriteError(key []byte, err error) error {
	msg := "Cannot write to taxonomy index"

	return &gn.Error{
		Code: errcode.DBWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot write key %q: %w", key, err),
	}
}

func CloseError(dir string, err error) error {
	msg := "Cannot close taxonomy index at <em>%s</em>"
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.DBCloseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot close badger store at %s: %w", dir, err),
	}
}

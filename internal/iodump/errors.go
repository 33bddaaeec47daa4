package iodump

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func FieldCountError(file string, line, want, got int) error {
	msg := `Malformed taxonomy dump

<em>File:</em> %s, line %d
<em>Fields:</em> %d (expected %d)`

	vars := []any{file, line, got, want}

	return &gn.Error{
		Code: errcode.InvalidFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s:%d: expected %d fields, got %d",
			file, line, want, got),
	}
}

func BadIDError(id, file string, line int, err error) error {
	msg := `Malformed taxonomy dump

<em>File:</em> %s, line %d
<em>Taxon ID is not a number:</em> '%s'`

	vars := []any{file, line, id}

	return &gn.Error{
		Code: errcode.InvalidFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: bad taxon id %q: %w", file, line, id, err),
	}
}

func UnknownRankError(rk, file string, line int) error {
	msg := `Unknown rank in taxonomy dump

<em>File:</em> %s, line %d
<em>Rank:</em> '%s'`

	vars := []any{file, line, rk}

	return &gn.Error{
		Code: errcode.UnknownRankError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: unknown rank %q", file, line, rk),
	}
}

func TableMissingError(path, table string) error {
	msg := `Taxonomy dump is incomplete

<em>Archive:</em> %s
<em>Missing table:</em> %s`

	vars := []any{path, table}

	return &gn.Error{
		Code: errcode.DumpTableMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s does not contain %s", path, table),
	}
}

func ReadDumpError(file string, err error) error {
	msg := "Cannot read taxonomy dump <em>%s</em>"
	vars := []any{file}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", file, err),
	}
}

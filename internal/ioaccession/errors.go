package ioaccession

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func HeaderError(name, column string) error {
	msg := `Mapping file <em>%s</em> has no column '%s'

<em>How to fix:</em>
  Add the column name to <em>build.accession_columns</em> in config.yaml`

	vars := []any{name, column}

	return &gn.Error{
		Code: errcode.MappingHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: header misses column %q", name, column),
	}
}

func EmptyInputError(name string) error {
	msg := "Mapping file <em>%s</em> is empty"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.MappingHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: no header row", name),
	}
}

func ReadError(name string, err error) error {
	msg := "Cannot read mapping file <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", name, err),
	}
}

func SourceDirError(dir string, err error) error {
	msg := "Cannot read mapping directory <em>%s</em>"
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.SourceDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read directory %s: %w", dir, err),
	}
}

func NoFilesError(dir string, suffixes []string) error {
	msg := `No mapping files found in <em>%s</em>

<em>Expected names ending with:</em> %s`

	sfx := strings.Join(suffixes, ", ")
	vars := []any{dir, sfx}

	return &gn.Error{
		Code: errcode.SourceDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no files ending with %s in %s", sfx, dir),
	}
}

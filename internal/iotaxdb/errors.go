package iotaxdb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func NoIndexError(dir string) error {
	msg := `No taxonomy index at <em>%s</em>

<em>How to fix:</em>
  1. Build it from NCBI files: <em>taxlookup build DIR</em>
  2. Or download a snapshot: <em>taxlookup install</em>`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("index directory %s does not exist", dir),
	}
}

func IncompatibleVersionError(dir, found string) error {
	msg := `Taxonomy index at <em>%s</em> has format version '%s', expected '%s'

<em>How to fix:</em>
  Rebuild the index with <em>taxlookup build</em>`

	vars := []any{dir, found, Version}

	return &gn.Error{
		Code: errcode.IncompatibleVersionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("index version %q is not compatible with %q",
			found, Version),
	}
}

func TaxonNotFoundError(id uint32) error {
	msg := "Taxon <em>%d</em> is not in the index"
	vars := []any{id}

	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxon %d not found", id),
	}
}

func BadRecordError(id uint32, record string, val []byte) error {
	msg := `Taxonomy index is corrupted

<em>Taxon:</em> %d
<em>Malformed %s record:</em> %x

<em>How to fix:</em>
  Rebuild the index with <em>taxlookup build</em>`

	vars := []any{id, record, val}

	return &gn.Error{
		Code: errcode.CorruptedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed %s value %x for taxon %d", record, val, id),
	}
}

func MetaReadError(path string, err error) error {
	msg := "Cannot read build metadata <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.MetaReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

func MetaWriteError(path string, err error) error {
	msg := "Cannot write build metadata <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.MetaWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

func LockedError(path string) error {
	msg := `Another build is running

<em>Lock file:</em> %s

<em>How to fix:</em>
  Wait until the other build finishes`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DBLockedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("build lock %s is held", path),
	}
}

func LockError(path string, err error) error {
	msg := "Cannot acquire build lock <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.DBLockedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot lock %s: %w", path, err),
	}
}

func RemoveIndexError(dir string, err error) error {
	msg := "Cannot remove old index at <em>%s</em>"
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.RemoveDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot remove %s: %w", dir, err),
	}
}

func IndexDirError(dir string, err error) error {
	msg := `Cannot create index parent directory <em>%s</em>

<em>How to fix:</em>
  Point <em>db.dir</em> in config.yaml to a writable location`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create %s: %w", dir, err),
	}
}

package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := `Cannot create taxlookup directory <em>%s</em>

<em>How to fix:</em>
  1. Remove a file that occupies this path
  2. Check permissions of the parent directory`

	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory %s: %w",
			fn.Name(), dir, err),
	}
}

func CopyFileError(file string, err error) error {
	msg := "Cannot write default taxlookup config to <em>%s</em>"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy file %s: %w",
			fn.Name(), file, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read taxlookup config <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

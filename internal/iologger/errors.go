package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func CreateLogFileError(path string, err error) error {
	msg := `Cannot open taxlookup log file <em>%s</em>

<em>How to fix:</em>
  1. Check permissions of the log directory
  2. Set <em>log.destination</em> to stderr in config.yaml
     or export TAXLOOKUP_LOG_DESTINATION=stderr`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open log file %s: %w",
			fn.Name(), path, err),
	}
}

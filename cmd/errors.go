package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func LookupError(failed int) error {
	msg := "<em>%d</em> queries failed, see the log for details"
	vars := []any{failed}

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d queries failed", failed),
	}
}

func TaxonIDError(q string, err error) error {
	msg := "<em>%s</em> is not a taxon ID"
	vars := []any{q}

	return &gn.Error{
		Code: errcode.InvalidFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse taxon ID %q: %w", q, err),
	}
}

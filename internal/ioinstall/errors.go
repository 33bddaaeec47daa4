package ioinstall

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/errcode"
)

func DownloadError(url string, err error) error {
	msg := `Cannot download snapshot from <em>%s</em>

<em>How to fix:</em>
  1. Check the network connection
  2. Check <em>snapshot.url</em> in config.yaml`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.SnapshotDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot download %s: %w", url, err),
	}
}

func StatusError(url, status string) error {
	msg := "Snapshot server answered <em>%s</em> for %s"
	vars := []any{status, url}

	return &gn.Error{
		Code: errcode.SnapshotDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("download of %s failed: %s", url, status),
	}
}

func ChecksumError(want, got string) error {
	msg := `Snapshot checksum does not match

<em>Expected:</em> %s
<em>Got:</em>      %s

The snapshot was not installed.`

	vars := []any{want, got}

	return &gn.Error{
		Code: errcode.SnapshotChecksumError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("sha256 mismatch: want %s, got %s", want, got),
	}
}

func ExtractError(path string, err error) error {
	msg := "Cannot extract snapshot to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SnapshotExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot extract %s: %w", path, err),
	}
}

func UnsafePathError(archive, name string) error {
	msg := `Snapshot <em>%s</em> is unsafe

<em>Entry outside of target directory:</em> %s`

	vars := []any{archive, name}

	return &gn.Error{
		Code: errcode.SnapshotExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: entry %q escapes target directory", archive, name),
	}
}

func NotIndexError(archive string) error {
	msg := `Snapshot <em>%s</em> does not hold a taxlookup index

<em>How to fix:</em>
  1. Point <em>snapshot.url</em> in config.yaml to a taxlookup snapshot
  2. Or build the index locally with <em>taxlookup build</em>`

	vars := []any{archive}

	return &gn.Error{
		Code: errcode.SnapshotExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no MANIFEST in %s", archive),
	}
}

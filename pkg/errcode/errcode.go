package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	RemoveDirError

	// Logging errors
	CreateLogFileError

	// Format errors (malformed dump or mapping data)
	InvalidFormatError
	DumpTableMissingError
	UnknownRankError
	MappingHeaderError
	SourceDirError

	// Query errors
	NotFoundError

	// Index errors
	CorruptedError
	IncompatibleVersionError
	DBOpenError
	DBReadError
	DBWriteError
	DBCloseError
	DBLockedError
	MetaReadError
	MetaWriteError

	// Snapshot errors
	SnapshotDownloadError
	SnapshotChecksumError
	SnapshotExtractError
)

// kinds groups fine-grained codes into the four kinds callers act on.
var kinds = map[gn.ErrorCode]gn.ErrorCode{
	DumpTableMissingError: InvalidFormatError,
	UnknownRankError:      InvalidFormatError,
	MappingHeaderError:    InvalidFormatError,
}

// Code returns the code of the first *gn.Error in the chain of err,
// or UnknownError if there is none.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}

// Is reports whether err carries code, either directly or through the
// kind the code belongs to. For example a code UnknownRankError
// satisfies Is(err, InvalidFormatError).
func Is(err error, code gn.ErrorCode) bool {
	if err == nil {
		return false
	}
	c := Code(err)
	if c == code {
		return true
	}
	if kind, ok := kinds[c]; ok {
		return kind == code
	}
	return false
}

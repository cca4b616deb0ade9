package backup

import (
	"archive/zip"
	"compress/flate"
	"io"
	"io/fs"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every error returned by Engine operations is marked with
// one of these and can be tested with errors.Is.
var (
	// ErrFilesystem marks failures to walk, read, write or delete files.
	ErrFilesystem = errors.New("filesystem error")

	// ErrArchiveFormat marks corrupt, unreadable or unsafe archives.
	ErrArchiveFormat = errors.New("archive format error")
)

// ErrorKind classifies an operation failure.
type ErrorKind int

const (
	// KindNone means there was no error.
	KindNone ErrorKind = iota
	// KindFilesystem is a filesystem failure.
	KindFilesystem
	// KindArchive is an archive format failure.
	KindArchive
	// KindOther is any unclassified failure.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFilesystem:
		return "filesystem"
	case KindArchive:
		return "archive"
	default:
		return "other"
	}
}

// KindOf returns the kind of err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrArchiveFormat):
		return KindArchive
	case errors.Is(err, ErrFilesystem):
		return KindFilesystem
	default:
		return KindOther
	}
}

// Outcome is the flattened result of an operation as shown to a user.
type Outcome struct {
	OK      bool
	Message string
	Kind    ErrorKind
}

// NewOutcome builds an Outcome from an operation's return values. On
// success Message is value (the archive name or the restore status);
// on failure it is the error message.
func NewOutcome(value string, err error) Outcome {
	if err != nil {
		return Outcome{Message: err.Error(), Kind: KindOf(err)}
	}
	return Outcome{OK: true, Message: value}
}

func fsError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrFilesystem)
}

func archiveError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrArchiveFormat)
}

// classify marks err as an archive error when it comes from decoding
// archive data and as a filesystem error otherwise.
func classify(err error, format string, args ...any) error {
	var corrupt flate.CorruptInputError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &pathErr):
		return fsError(err, format, args...)
	case errors.Is(err, zip.ErrFormat),
		errors.Is(err, zip.ErrChecksum),
		errors.Is(err, zip.ErrAlgorithm),
		errors.Is(err, zip.ErrInsecurePath),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &corrupt):
		return archiveError(err, format, args...)
	default:
		return fsError(err, format, args...)
	}
}

package backup

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Archive naming.
const (
	// ArchivePrefix starts every archive file name.
	ArchivePrefix = "FFXIV-Backup-"

	// ArchiveExt ends every archive file name.
	ArchiveExt = ".zip"

	// TimestampLayout formats the creation time inside archive names.
	TimestampLayout = "20060102-150405"
)

// StatusSuccess is returned by a successful Restore.
const StatusSuccess = "Success"

// DefaultRetentionCount is the number of archives kept by a prune.
const DefaultRetentionCount = 5

// ErrNoArchivesFound indicates a directory holds no archives.
var ErrNoArchivesFound = errors.New("no backup archives found")

// ArchiveInfo describes a backup archive on disk.
type ArchiveInfo struct {
	// Name is the archive file name.
	Name string `json:"name"`

	// Path is the full path to the archive.
	Path string `json:"path"`

	// CreatedAt is parsed from the archive name, in local time.
	CreatedAt time.Time `json:"created_at"`

	// Size is the archive size in bytes.
	Size int64 `json:"size"`

	// Entries is the number of entries, or -1 if the archive is unreadable.
	Entries int `json:"entries"`
}

// EntryInfo describes one entry of an archive.
type EntryInfo struct {
	Name     string    `json:"name"`
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
	Dir      bool      `json:"dir,omitempty"`
}

// ArchiveName returns the archive file name for a backup taken at t.
func ArchiveName(t time.Time) string {
	return ArchivePrefix + t.Format(TimestampLayout) + ArchiveExt
}

// ParseArchiveName extracts the creation time from an archive name.
// It reports false for names that do not follow the naming convention.
func ParseArchiveName(name string) (time.Time, bool) {
	if len(name) != len(ArchivePrefix)+len(TimestampLayout)+len(ArchiveExt) {
		return time.Time{}, false
	}
	if name[:len(ArchivePrefix)] != ArchivePrefix || name[len(name)-len(ArchiveExt):] != ArchiveExt {
		return time.Time{}, false
	}
	ts := name[len(ArchivePrefix) : len(name)-len(ArchiveExt)]
	t, err := time.ParseInLocation(TimestampLayout, ts, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

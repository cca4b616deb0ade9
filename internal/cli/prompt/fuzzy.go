package prompt

import (
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// find is swapped out in tests; the real finder needs a terminal.
var find = func(archives []backup.ArchiveInfo, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(archives, label, opts...)
}

// FuzzySelectArchive lets the user pick an archive with an interactive
// fuzzy finder. preview, when non-nil, renders the right-hand pane.
func FuzzySelectArchive(header string, archives []backup.ArchiveInfo, preview func(backup.ArchiveInfo) string) (*backup.ArchiveInfo, error) {
	if len(archives) == 0 {
		return nil, ErrNoArchives
	}

	opts := []fuzzyfinder.Option{fuzzyfinder.WithHeader(header)}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(archives[i])
		}))
	}

	idx, err := find(
		archives,
		func(i int) string {
			return Label(archives[i])
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	return &archives[idx], nil
}

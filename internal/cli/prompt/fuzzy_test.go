package prompt

import (
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

// stubFind replaces the terminal finder for the duration of a test.
func stubFind(t *testing.T, fn func([]backup.ArchiveInfo, func(int) string) (int, error)) {
	t.Helper()
	orig := find
	t.Cleanup(func() { find = orig })
	find = func(archives []backup.ArchiveInfo, label func(int) string, _ ...fuzzyfinder.Option) (int, error) {
		return fn(archives, label)
	}
}

func TestFuzzySelectArchive(t *testing.T) {
	var labels []string
	stubFind(t, func(archives []backup.ArchiveInfo, label func(int) string) (int, error) {
		for i := range archives {
			labels = append(labels, label(i))
		}
		return 1, nil
	})

	archives := testArchives()
	got, err := FuzzySelectArchive("Choose", archives, nil)
	require.NoError(t, err)
	assert.Equal(t, archives[1].Name, got.Name)
	assert.Equal(t, []string{Label(archives[0]), Label(archives[1])}, labels)
}

func TestFuzzySelectArchive_Abort(t *testing.T) {
	stubFind(t, func([]backup.ArchiveInfo, func(int) string) (int, error) {
		return 0, fuzzyfinder.ErrAbort
	})

	_, err := FuzzySelectArchive("Choose", testArchives(), nil)
	assert.True(t, errors.Is(err, ErrSelectionCancelled))
}

func TestFuzzySelectArchive_Empty(t *testing.T) {
	_, err := FuzzySelectArchive("Choose", nil, nil)
	assert.True(t, errors.Is(err, ErrNoArchives))
}

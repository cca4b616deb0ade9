package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znzinc01/FFXIV-BackupManager/internal/backup"
	"github.com/znzinc01/FFXIV-BackupManager/internal/errors"
)

func testArchives() []backup.ArchiveInfo {
	newer := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	older := newer.Add(-24 * time.Hour)
	return []backup.ArchiveInfo{
		{Name: backup.ArchiveName(newer), CreatedAt: newer, Size: 2048},
		{Name: backup.ArchiveName(older), CreatedAt: older, Size: 512},
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)
			assert.Equal(t, tt.want, p.Confirm("Continue?"))
			assert.Equal(t, "Continue? [y/N]: ", buf.String())
		})
	}
}

func TestSelectArchive_EmptyList(t *testing.T) {
	t.Parallel()

	p := NewWithIO(strings.NewReader(""), io.Discard)
	_, err := p.SelectArchive("Choose", nil)
	assert.True(t, errors.Is(err, ErrNoArchives))
}

func TestSelectArchive_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithIO(strings.NewReader(""), &buf)
	archives := testArchives()[:1]

	got, err := p.SelectArchive("Choose", archives)
	require.NoError(t, err)
	assert.Equal(t, archives[0].Name, got.Name)
	assert.Zero(t, buf.Len(), "single archive must not prompt")
}

func TestSelectArchive_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantIdx int
	}{
		{"explicit first", "1\n", 0},
		{"explicit second", "2\n", 1},
		{"default on empty", "\n", 0},
		{"whitespace trimmed", "  2  \n", 1},
		{"no trailing newline", "2", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			archives := testArchives()
			p := NewWithIO(strings.NewReader(tt.input), io.Discard)

			got, err := p.SelectArchive("Choose", archives)
			require.NoError(t, err)
			assert.Equal(t, archives[tt.wantIdx].Name, got.Name)
		})
	}
}

func TestSelectArchive_InvalidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too low", "0\n", "out of range"},
		{"too high", "3\n", "out of range"},
		{"negative", "-1\n", "out of range"},
		{"not a number", "abc\n", "not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewWithIO(strings.NewReader(tt.input), io.Discard)
			_, err := p.SelectArchive("Choose", testArchives())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSelection))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelectArchive_Cancelled(t *testing.T) {
	t.Parallel()

	p := NewWithIO(strings.NewReader(""), io.Discard)
	_, err := p.SelectArchive("Choose", testArchives())
	assert.True(t, errors.Is(err, ErrSelectionCancelled))
}

func TestSelectArchive_OutputFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithIO(strings.NewReader("1\n"), &buf)

	_, err := p.SelectArchive("Choose a backup file", testArchives())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Choose a backup file:\n")
	assert.Contains(t, out, "[1] FFXIV-Backup-20240102-030405.zip  (2024-01-02 03:04:05, 2.0 KiB)")
	assert.Contains(t, out, "[2] FFXIV-Backup-20240101-030405.zip  (2024-01-01 03:04:05, 512 B)")
	assert.True(t, strings.HasSuffix(out, "Select [1]: "))
}

func TestPrompter_SharedInput(t *testing.T) {
	t.Parallel()

	p := NewWithIO(strings.NewReader("2\ny\n"), io.Discard)

	got, err := p.SelectArchive("Choose", testArchives())
	require.NoError(t, err)
	assert.Equal(t, testArchives()[1].Name, got.Name)
	assert.True(t, p.Confirm("Continue?"), "second prompt must see the remaining input")
}

func TestHumanSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in), "HumanSize(%d)", tt.in)
	}
}

package backup

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
)

const (
	charDir      = "FFXIV_CHR0040000000000001"
	otherCharDir = "FFXIV_CHRabcdefgh12345678"
)

var fixedTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithLogger(logging.ForTest(t)),
		WithClock(ClockFunc(func() time.Time { return fixedTime })),
	}
	return NewEngine(append(base, opts...)...)
}

func writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	if !mtime.IsZero() {
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

// gameTree builds a typical game data directory and returns its root.
func gameTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "FFXIV.cfg"), "root config", time.Time{})
	writeFile(t, filepath.Join(root, charDir, "ADDON.DAT"), "addon layout", time.Time{})
	writeFile(t, filepath.Join(root, charDir, "HOTBAR.DAT"), "hotbars", time.Time{})
	writeFile(t, filepath.Join(root, otherCharDir, "KEYBIND.DAT"), "keybinds", time.Time{})
	writeFile(t, filepath.Join(root, "log", "chat.log"), "hello world", time.Time{})
	writeFile(t, filepath.Join(root, "screenshots", "shot.png"), "png", time.Time{})
	return root
}

// archiveEntries returns the sorted entry names of the archive at path.
func archiveEntries(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// snapshot maps slash-separated relative paths of every file under root
// to their contents.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

type rawEntry struct {
	name    string
	content string
	method  uint16
	// dosDate and dosTime are used when set; Modified is left zero so
	// no extended timestamp is written.
	dosDate, dosTime uint16
	modified         time.Time
}

// writeRawArchive writes a zip file with full control over entry headers.
func writeRawArchive(t *testing.T, path string, entries ...rawEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: e.method}
		if e.dosDate != 0 {
			hdr.ModifiedDate = e.dosDate
			hdr.ModifiedTime = e.dosTime
		} else {
			hdr.Modified = e.modified
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func toDOS(t time.Time) (date, clock uint16) {
	date = uint16(t.Day() + int(t.Month())<<5 + (t.Year()-1980)<<9)
	clock = uint16(t.Second()/2 + t.Minute()<<5 + t.Hour()<<11)
	return date, clock
}

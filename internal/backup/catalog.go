package backup

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// List returns the archives in dir, newest first.
// Files that do not follow the archive naming convention are ignored.
// Returns ErrNoArchivesFound if there are none.
func (e *Engine) List(dir string) ([]ArchiveInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoArchivesFound
		}
		return nil, fsError(err, "reading backup directory")
	}

	archives := make([]ArchiveInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		created, ok := ParseArchiveName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}

		p := filepath.Join(dir, entry.Name())
		archives = append(archives, ArchiveInfo{
			Name:      entry.Name(),
			Path:      p,
			CreatedAt: created,
			Size:      info.Size(),
			Entries:   countEntries(p),
		})
	}

	if len(archives) == 0 {
		return nil, ErrNoArchivesFound
	}

	slices.SortFunc(archives, func(a, b ArchiveInfo) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return archives, nil
}

func countEntries(path string) int {
	zr, err := openForReading(path)
	if err != nil {
		return -1
	}
	defer zr.Close()
	return len(zr.File)
}

// openForReading opens an archive for read-only use. Archives with
// insecure entry names are still readable; Restore rejects them.
func openForReading(path string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		if zr != nil {
			zr.Close()
		}
		return nil, err
	}
	return zr, nil
}

// Prune removes archives in dir beyond the newest keep and returns the
// names of the removed archives.
func (e *Engine) Prune(dir string, keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	archives, err := e.List(dir)
	if err != nil {
		if errors.Is(err, ErrNoArchivesFound) {
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for i := keep; i < len(archives); i++ {
		if err := os.Remove(archives[i].Path); err != nil {
			return removed, fsError(err, "removing archive %s", archives[i].Name)
		}
		e.logger.Info("pruned archive", "archive", archives[i].Name)
		removed = append(removed, archives[i].Name)
	}
	return removed, nil
}

// Inspect lists the entries of the archive at path.
func (e *Engine) Inspect(path string) ([]EntryInfo, error) {
	zr, err := openForReading(path)
	if err != nil {
		return nil, classify(err, "opening archive")
	}
	defer zr.Close()

	entries := make([]EntryInfo, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, EntryInfo{
			Name:     f.Name,
			Size:     f.UncompressedSize64,
			Modified: EntryModTime(&f.FileHeader),
			Dir:      f.FileInfo().IsDir(),
		})
	}
	return entries, nil
}

// Verify reads every entry of the archive at path, checking checksums and
// entry names the way Restore would, and returns the number of entries.
// Nothing is written to disk.
func (e *Engine) Verify(path string) (int, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if zr != nil {
			zr.Close()
		}
		return 0, classify(err, "opening archive")
	}
	defer zr.Close()

	if _, err := e.plan(zr.File); err != nil {
		return 0, err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := drain(f); err != nil {
			return 0, err
		}
	}
	return len(zr.File), nil
}

func drain(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return classify(err, "opening entry %s", f.Name)
	}
	defer rc.Close()
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return classify(err, "reading entry %s", f.Name)
	}
	return nil
}

package backup

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
)

// restoreEntry is an archive entry scheduled for extraction.
type restoreEntry struct {
	file *zip.File
	rel  string // cleaned, slash-separated
	top  string // first path element of rel
}

// Restore replaces the game state under targetRoot with the contents of
// the archive at archivePath and returns StatusSuccess.
//
// Every qualifying immediate child of targetRoot is deleted first, then
// the archive is extracted and file times are set from the archive.
// The archive is validated before anything is deleted; failures after
// that point leave the target partially restored unless staged restore
// is enabled.
func (e *Engine) Restore(archivePath, targetRoot string) (string, error) {
	log := e.logger.With("archive", filepath.Base(archivePath), "target", targetRoot)

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		// ErrInsecurePath comes with an open reader.
		if zr != nil {
			zr.Close()
		}
		return "", classify(err, "opening archive")
	}
	defer zr.Close()

	info, err := os.Stat(targetRoot)
	if err != nil {
		return "", fsError(err, "restore target")
	}
	if !info.IsDir() {
		return "", fsError(errors.Newf("%s is not a directory", targetRoot), "restore target")
	}

	entries, err := e.plan(zr.File)
	if err != nil {
		return "", err
	}

	if e.staged {
		err = e.restoreStaged(entries, targetRoot)
	} else {
		err = e.restoreInPlace(entries, targetRoot)
	}
	if err != nil {
		return "", err
	}

	log.Info("restore complete", "entries", len(entries))
	return StatusSuccess, nil
}

// plan validates entry names and drops entries with no qualifying
// directory in their path, the rule Backup used to include them.
func (e *Engine) plan(files []*zip.File) ([]restoreEntry, error) {
	entries := make([]restoreEntry, 0, len(files))
	for _, f := range files {
		name := strings.ReplaceAll(f.Name, `\`, "/")
		rel := path.Clean(name)
		if rel == "." {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return nil, archiveError(errors.Newf("entry %q escapes the target directory", f.Name), "unsafe archive")
		}

		top, _, _ := strings.Cut(rel, "/")
		if !e.insideGameState(rel, f.FileInfo().IsDir()) {
			e.logger.Warn("skipping entry outside game state directories", "name", f.Name)
			continue
		}
		entries = append(entries, restoreEntry{file: f, rel: rel, top: top})
	}
	return entries, nil
}

// insideGameState reports whether a directory of rel qualifies. For files
// the last element is the file name and is not a directory.
func (e *Engine) insideGameState(rel string, isDir bool) bool {
	dirs := strings.Split(rel, "/")
	if !isDir {
		dirs = dirs[:len(dirs)-1]
	}
	return slices.ContainsFunc(dirs, e.selector.IsQualifying)
}

func (e *Engine) restoreInPlace(entries []restoreEntry, targetRoot string) error {
	if err := e.cleanup(targetRoot); err != nil {
		return err
	}
	return e.extract(entries, targetRoot)
}

// restoreStaged extracts into a temporary directory inside targetRoot so
// that the final moves are same-filesystem renames.
func (e *Engine) restoreStaged(entries []restoreEntry, targetRoot string) error {
	stage, err := os.MkdirTemp(targetRoot, ".xivbackup-restore-*")
	if err != nil {
		return fsError(err, "creating staging directory")
	}
	defer os.RemoveAll(stage)

	if err := e.extract(entries, stage); err != nil {
		return err
	}
	if err := e.cleanup(targetRoot); err != nil {
		return err
	}

	var tops []string
	for _, entry := range entries {
		if !slices.Contains(tops, entry.top) {
			tops = append(tops, entry.top)
		}
	}
	for _, top := range tops {
		if err := moveInto(filepath.Join(stage, top), filepath.Join(targetRoot, top)); err != nil {
			return fsError(err, "moving %s into place", top)
		}
	}
	return nil
}

// moveInto renames src to dst. When both are directories, the children
// of src are merged into dst so that existing non-qualifying content of
// dst is kept.
func moveInto(src, dst string) error {
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return os.Rename(src, dst)
	}
	if err != nil {
		return err
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() || !dstInfo.IsDir() {
		return os.Rename(src, dst)
	}

	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := moveInto(filepath.Join(src, child.Name()), filepath.Join(dst, child.Name())); err != nil {
			return err
		}
	}
	// dst existed before the restore; keep its time.
	return os.Chtimes(dst, dstInfo.ModTime(), dstInfo.ModTime())
}

// cleanup removes every qualifying immediate child of root.
func (e *Engine) cleanup(root string) error {
	children, err := os.ReadDir(root)
	if err != nil {
		return fsError(err, "listing %s", root)
	}

	for _, child := range children {
		if !e.selector.IsQualifying(child.Name()) {
			continue
		}
		p := filepath.Join(root, child.Name())
		if child.IsDir() {
			err = os.RemoveAll(p)
		} else {
			err = os.Remove(p)
		}
		if err != nil {
			return fsError(err, "removing %s", child.Name())
		}
		e.logger.Info("removed existing entry", "name", child.Name())
	}
	return nil
}

// extract writes entries under root. Directory times are applied last
// because writing files into a directory updates its modification time.
func (e *Engine) extract(entries []restoreEntry, root string) error {
	var dirs []restoreEntry
	for _, entry := range entries {
		dest := filepath.Join(root, filepath.FromSlash(entry.rel))
		if entry.file.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return fsError(err, "creating directory %s", entry.rel)
			}
			dirs = append(dirs, entry)
			continue
		}
		if err := e.extractFile(entry.file, dest); err != nil {
			return err
		}
		e.logger.Log(context.Background(), logging.LevelTrace, "extracted entry", "name", entry.rel)
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		dest := filepath.Join(root, filepath.FromSlash(dirs[i].rel))
		mt := EntryModTime(&dirs[i].file.FileHeader)
		if err := os.Chtimes(dest, mt, mt); err != nil {
			return fsError(err, "setting times on %s", dirs[i].rel)
		}
	}
	return nil
}

func (e *Engine) extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fsError(err, "creating parent of %s", f.Name)
	}

	rc, err := f.Open()
	if err != nil {
		return classify(err, "opening entry %s", f.Name)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fsError(err, "creating %s", f.Name)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return classify(err, "extracting %s", f.Name)
	}
	if err := out.Close(); err != nil {
		return fsError(err, "closing %s", f.Name)
	}

	mt := EntryModTime(&f.FileHeader)
	if err := os.Chtimes(dest, mt, mt); err != nil {
		return fsError(err, "setting times on %s", f.Name)
	}
	return nil
}

package backup

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/znzinc01/FFXIV-BackupManager/internal/logging"
)

// Backup writes a new archive of the game state under sourceRoot into
// destRoot and returns the archive's file name.
//
// On failure the error carries the underlying cause and a partially
// written archive may remain in destRoot.
func (e *Engine) Backup(sourceRoot, destRoot string) (name string, err error) {
	name = ArchiveName(e.clock.Now())
	archivePath := filepath.Join(destRoot, name)
	log := e.logger.With("archive", name)

	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fsError(err, "creating archive")
	}

	zw := zip.NewWriter(f)
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fsError(cerr, "finalizing archive")
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fsError(cerr, "closing archive")
		}
		if err != nil {
			name = ""
		}
	}()

	// The archive itself may live inside a qualifying directory.
	self, err := os.Stat(archivePath)
	if err != nil {
		return "", fsError(err, "stat archive")
	}

	log.Info("creating archive", "source", sourceRoot, "dest", destRoot)

	// WalkDir does not descend into a root that is a symlink.
	resolved, err := filepath.EvalSymlinks(sourceRoot)
	if err != nil {
		return "", fsError(err, "resolving %s", sourceRoot)
	}
	if resolved != sourceRoot {
		log.Debug("source resolved", "path", resolved)
	}
	sourceRoot = resolved

	files := 0
	err = filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == sourceRoot {
			return nil
		}
		if !e.selector.IsQualifying(d.Name()) {
			return nil
		}
		n, err := e.addDirectory(zw, sourceRoot, path, self)
		files += n
		return err
	})
	if err != nil {
		return "", fsError(err, "backing up %s", sourceRoot)
	}

	log.Info("archive created", "files", files)
	return name, nil
}

// addDirectory adds the files directly inside dir. Subdirectories are
// left to the walk.
func (e *Engine) addDirectory(zw *zip.Writer, root, dir string, self fs.FileInfo) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks so linked files are archived by content.
		info, err := os.Stat(path)
		if err != nil {
			return added, err
		}
		if !info.Mode().IsRegular() || os.SameFile(info, self) {
			continue
		}

		if err := e.addFile(zw, root, path, info); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (e *Engine) addFile(zw *zip.Writer, root, path string, info fs.FileInfo) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return err
	}

	e.logger.Log(context.Background(), logging.LevelTrace, "added entry", "name", hdr.Name, "size", info.Size())
	return nil
}

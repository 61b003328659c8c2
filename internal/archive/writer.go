package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ErrNotDirectory is returned when the source root is not a directory.
var ErrNotDirectory = errors.New("source is not a directory")

// Directory writes every regular file under sourceRoot into a zip archive at
// archivePath. Entry names are relative to sourceRoot's parent and use "/"
// separators; directories are implied by file names and not stored. An
// existing archive is truncated. On failure the partial archive is removed.
func Directory(sourceRoot, archivePath string) (err error) {
	src, err := filepath.Abs(sourceRoot)
	if err != nil {
		return &ArchiveError{Op: "open", Path: sourceRoot, Err: err}
	}
	dst, err := filepath.Abs(archivePath)
	if err != nil {
		return &ArchiveError{Op: "create", Path: archivePath, Err: err}
	}

	// WalkDir does not follow a symlinked root, so walk its target and keep
	// the link's own name as the entry prefix.
	walkRoot, err := filepath.EvalSymlinks(src)
	if err != nil {
		return &ArchiveError{Op: "open", Path: sourceRoot, Err: err}
	}
	info, err := os.Stat(walkRoot)
	if err != nil {
		return &ArchiveError{Op: "open", Path: sourceRoot, Err: err}
	}
	if !info.IsDir() {
		return &ArchiveError{Op: "open", Path: sourceRoot, Err: ErrNotDirectory}
	}
	prefix := filepath.Base(src)

	f, err := os.Create(dst)
	if err != nil {
		return &ArchiveError{Op: "create", Path: archivePath, Err: err}
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(dst)
		}
	}()

	// The archive may sit inside the tree under its resolved path.
	self := dst
	if resolved, err := filepath.EvalSymlinks(dst); err == nil {
		self = resolved
	}

	zw := zip.NewWriter(f)

	walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &ArchiveError{Op: "walk", Path: path, Err: err}
		}
		if !d.Type().IsRegular() || path == self || path == dst {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return &ArchiveError{Op: "walk", Path: path, Err: err}
		}
		return addFile(zw, path, filepath.ToSlash(filepath.Join(prefix, rel)))
	})
	if walkErr != nil {
		return walkErr
	}

	if err := zw.Close(); err != nil {
		return &ArchiveError{Op: "write", Path: archivePath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ArchiveError{Op: "write", Path: archivePath, Err: err}
	}
	return nil
}

// addFile deflates the file at path into zw under name.
func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return &ArchiveError{Op: "read", Path: path, Err: err}
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return &ArchiveError{Op: "read", Path: path, Err: err}
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return &ArchiveError{Op: "read", Path: path, Err: err}
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return &ArchiveError{Op: "write", Path: name, Err: err}
	}
	if _, err := io.Copy(w, src); err != nil {
		return &ArchiveError{Op: "read", Path: path, Err: fmt.Errorf("copying into %s: %w", name, err)}
	}
	return nil
}

package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// ErrUnsafeEntry is returned by Extract for member names that would land
// outside the destination directory.
var ErrUnsafeEntry = errors.New("entry escapes the destination directory")

// Entry describes one archive member.
type Entry struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	Method         uint16
	Modified       time.Time
}

// MethodName returns a readable compression method name.
func (e Entry) MethodName() string {
	switch e.Method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method-%d", e.Method)
	}
}

// List returns the members of the archive at path in stored order.
func List(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Op: "open", Path: path, Err: err}
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Method:         f.Method,
			Modified:       f.Modified,
		})
	}
	return entries, nil
}

// Extract unpacks the archive at path into destDir, creating directories as
// needed. Members whose names are absolute or climb out of destDir are
// refused before anything is written for them.
func Extract(path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return &ArchiveError{Op: "open", Path: path, Err: err}
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	local := filepath.FromSlash(f.Name)
	if !filepath.IsLocal(local) {
		return &ArchiveError{Op: "extract", Path: f.Name, Err: ErrUnsafeEntry}
	}
	target := filepath.Join(destDir, local)

	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		if err := os.MkdirAll(target, 0755); err != nil {
			return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
	}

	rc, err := f.Open()
	if err != nil {
		return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
	}
	if err := out.Close(); err != nil {
		return &ArchiveError{Op: "extract", Path: f.Name, Err: err}
	}
	return nil
}

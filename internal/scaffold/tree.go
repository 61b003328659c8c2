package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/projkit/projkit/internal/platform"
)

// EnsureTree creates root and then root/dir for every entry of dirs, in
// order, along with any missing ancestors. Directories that already exist are
// left alone, so the call can be repeated. Processing stops at the first
// failure: entries before it exist on disk, entries after it were not
// attempted. Progress lines go to w, which may be nil.
func EnsureTree(w io.Writer, root string, dirs []string) error {
	if w == nil {
		w = io.Discard
	}

	if err := ensureDir(w, root, ""); err != nil {
		return err
	}

	for _, entry := range dirs {
		target, err := resolve("mkdir", root, entry)
		if err != nil {
			return err
		}
		if err := ensureDir(w, target, entry); err != nil {
			return err
		}
	}
	return nil
}

// resolve joins a slash-separated blueprint entry onto root.
func resolve(op, root, entry string) (string, error) {
	local := filepath.FromSlash(entry)
	if !filepath.IsLocal(local) {
		return "", &FilesystemError{Op: op, Path: entry, Entry: entry, Err: ErrOutsideRoot}
	}
	return filepath.Join(root, local), nil
}

// ensureDir creates path if it doesn't exist.
func ensureDir(w io.Writer, path, entry string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	case err == nil:
		return &FilesystemError{Op: "mkdir", Path: path, Entry: entry, Err: ErrNotDir}
	case !errors.Is(err, fs.ErrNotExist):
		// ENOTDIR from a file in an ancestor segment lands here.
		return &FilesystemError{Op: "mkdir", Path: path, Entry: entry, Err: notDirOr(err)}
	}

	if err := os.MkdirAll(path, platform.DirMode); err != nil {
		return &FilesystemError{Op: "mkdir", Path: path, Entry: entry, Err: notDirOr(err)}
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// notDirOr maps the platform's "not a directory" failures onto ErrNotDir
// while keeping every other error as-is.
func notDirOr(err error) error {
	if isNotDir(err) {
		return fmt.Errorf("%w: %w", ErrNotDir, err)
	}
	return err
}

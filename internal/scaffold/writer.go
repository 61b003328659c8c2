package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/projkit/projkit/internal/blueprint"
	"github.com/projkit/projkit/internal/platform"
)

// WriteFile writes content to path, replacing any existing file, and applies
// perm. The parent directory is created when missing.
func WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), platform.DirMode); err != nil {
		return &FilesystemError{Op: "mkdir", Path: filepath.Dir(path), Err: notDirOr(err)}
	}
	if err := os.WriteFile(path, content, perm); err != nil {
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}
	// WriteFile keeps the mode of an existing file and is subject to umask.
	if err := platform.Chmod(path, perm); err != nil {
		return &FilesystemError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// WriteBoilerplate writes every blueprint file under root in order and
// returns the slash-separated paths written. Inline content is written
// verbatim; template content comes from r. It stops at the first failure.
func WriteBoilerplate(w io.Writer, root string, files []blueprint.File, r *Renderer, data RenderData) ([]string, error) {
	if w == nil {
		w = io.Discard
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		target, err := resolve("write", root, f.Path)
		if err != nil {
			return written, err
		}

		content := []byte(f.Content)
		if f.Template != "" {
			content, err = r.Render(f.Template, data)
			if err != nil {
				return written, fmt.Errorf("rendering %s: %w", f.Path, err)
			}
		}

		if err := WriteFile(target, content, platform.ModeFor(f.Executable)); err != nil {
			var fsErr *FilesystemError
			if errors.As(err, &fsErr) {
				fsErr.Entry = f.Path
			}
			return written, err
		}
		fmt.Fprintf(w, "  [ OK ] Wrote %s\n", target)
		written = append(written, f.Path)
	}
	return written, nil
}

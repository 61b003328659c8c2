package scaffold

import "errors"

// ErrNotDir is the cause recorded when a path segment that must be a
// directory is occupied by some other kind of entry.
var ErrNotDir = errors.New("exists but is not a directory")

// ErrOutsideRoot is the cause recorded for entries that would resolve
// outside the project root.
var ErrOutsideRoot = errors.New("path escapes the project root")

// FilesystemError reports a failed directory or file operation.
type FilesystemError struct {
	Op    string // "mkdir", "write" or "chmod"
	Path  string // absolute or root-joined path that failed
	Entry string // blueprint entry being processed, if any
	Err   error
}

func (e *FilesystemError) Error() string {
	if e.Entry != "" {
		return e.Op + " " + e.Path + " (entry " + e.Entry + "): " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

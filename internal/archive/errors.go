package archive

// ArchiveError reports a failure while creating, reading or extracting an
// archive.
type ArchiveError struct {
	Op   string // "create", "walk", "read", "write", "open" or "extract"
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return "archive " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

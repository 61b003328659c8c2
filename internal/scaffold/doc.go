// Package scaffold materializes a project skeleton on disk. EnsureTree creates
// the directory set, WriteFile and WriteBoilerplate put the boilerplate files
// in place, and Renderer turns embedded template resources into file content.
// Every filesystem failure is reported as a *FilesystemError.
package scaffold

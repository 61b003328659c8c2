// Package archive packages a project tree into a deflate-compressed zip
// archive and reads such archives back. Member names are relative to the
// parent of the packaged directory, so extracting an archive recreates a
// folder named after the project.
package archive

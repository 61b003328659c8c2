// Package pipeline turns a blueprint into a project tree and its archive.
//
// Generation runs three steps in a fixed order:
//
//  1. BuildScaffold creates the project root and every blueprint directory.
//  2. WriteBoilerplate writes the boilerplate files and the application
//     manifest.
//  3. CreateArchive packages the root into <name>.zip.
//
// Each step takes its inputs explicitly and reports progress as status lines
// on an io.Writer. Run stops at the first failing step.
package pipeline

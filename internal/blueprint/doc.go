// Package blueprint loads and validates project blueprints. A blueprint names
// the project root, lists the directories to create, the boilerplate files to
// write and the application manifest to emit, and says whether the finished
// tree is packaged into an archive. Documents are YAML and are checked
// against an embedded JSON Schema before they are decoded.
package blueprint

// Package manifest models the application manifest (package.json) emitted into
// a generated project. It writes and reads the document as indented JSON and
// checks the identity fields an npm toolchain will reject: the package name,
// the semver version and every dependency range.
package manifest

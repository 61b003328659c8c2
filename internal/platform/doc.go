// Package platform hides OS differences in filesystem permission handling.
// On Unix systems it applies mode bits directly; on Windows, where Unix-style
// permission bits do not exist, the calls are no-ops.
package platform

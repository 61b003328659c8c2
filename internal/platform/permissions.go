package platform

import (
	"os"
	"runtime"
)

// Modes applied to generated files and directories.
const (
	DirMode        os.FileMode = 0755
	FileMode       os.FileMode = 0644
	ExecutableMode os.FileMode = 0755
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// ModeFor returns the creation mode for a generated file.
func ModeFor(executable bool) os.FileMode {
	if executable {
		return ExecutableMode
	}
	return FileMode
}

//go:build windows

package scaffold

import (
	"errors"
	"syscall"
)

// Windows reports a file used as a directory as ERROR_PATH_NOT_FOUND.
func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ERROR_PATH_NOT_FOUND)
}

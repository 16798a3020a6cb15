//go:build windows

package runner

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isTransient(err error) bool {
	return errors.Is(err, windows.ERROR_SHARING_VIOLATION) || errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}

//go:build !windows

package runner

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isTransient(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EBUSY) || errors.Is(err, unix.ETXTBSY)
}

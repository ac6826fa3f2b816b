//go:build !windows

package procctl

import (
	"errors"

	"golang.org/x/sys/unix"
)

func terminate(pid int) error {
	err := unix.Kill(pid, unix.SIGTERM)
	if errors.Is(err, unix.ESRCH) {
		return ErrProcessGone
	}
	return err
}

//go:build windows

package procctl

import (
	"errors"

	"golang.org/x/sys/windows"
)

// Windows has no SIGTERM for unrelated console-less processes, so the
// watcher is terminated forcefully.
func terminate(pid int) error {
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE|windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			return ErrProcessGone
		}
		return err
	}
	defer windows.CloseHandle(handle)

	var code uint32
	if err := windows.GetExitCodeProcess(handle, &code); err == nil && code != windowsStillActive {
		return ErrProcessGone
	}
	return windows.TerminateProcess(handle, 1)
}

const windowsStillActive = 259

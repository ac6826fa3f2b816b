//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// detach puts the watcher in its own session so it outlives the terminal.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
